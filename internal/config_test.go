package calsched_internal

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type loadConfigTestCase struct {
	name       string
	data       string
	wantConfig *Config
}

func testLoadConfig(t *testing.T, tc *loadConfigTestCase) {
	got, err := LoadConfig("", []byte(strings.ReplaceAll(tc.data, "\t", "  ")))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(tc.wantConfig, got); diff != "" {
		t.Fatalf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig(t *testing.T) {
	ignoredData := `
		ignore:
			foo: bar
	`

	loggerData := `
		calsched_config:
			log_config:
				level: debug
	`
	loggerCfg := DefaultConfig()
	loggerCfg.LoggerConfig.Level = "debug"

	workerPoolData := `
		calsched_config:
			worker_pool_config:
				num_workers: 5
	`
	workerPoolCfg := DefaultConfig()
	workerPoolCfg.WorkerPoolConfig.NumWorkers = 5

	schedulerData := `
		calsched_config:
			scheduler_config:
				num_workers: 3
	`
	schedulerCfg := DefaultConfig()
	schedulerCfg.SchedulerConfig.NumWorkers = 3

	for _, tc := range []*loadConfigTestCase{
		{
			name:       "default",
			wantConfig: DefaultConfig(),
		},
		{
			name: "empty_section",
			data: `
				calsched_config:
			`,
			wantConfig: DefaultConfig(),
		},
		{
			name:       "log_config",
			data:       loggerData,
			wantConfig: loggerCfg,
		},
		{
			name:       "worker_pool_config",
			data:       workerPoolData,
			wantConfig: workerPoolCfg,
		},
		{
			name:       "scheduler_config",
			data:       schedulerData,
			wantConfig: schedulerCfg,
		},
		{
			name:       "log_config_plus_ignored",
			data:       loggerData + ignoredData,
			wantConfig: loggerCfg,
		},
		{
			name:       "ignored_plus_log_config",
			data:       ignoredData + loggerData,
			wantConfig: loggerCfg,
		},
	} {
		t.Run(tc.name, func(t *testing.T) { testLoadConfig(t, tc) })
	}
}
