// The public face of the scheduler for the users of this package.

package calsched

import (
	"time"

	"github.com/sirupsen/logrus"

	calsched_internal "github.com/calsched/calsched/internal"
)

// FieldRuleValue is the set of integer kinds a calendar field may be
// expressed in.
type FieldRuleValue = calsched_internal.FieldRuleValue

// FieldRule matches a single calendar field (second, minute, hour, day of
// week, day of month, month or year) against a value, a stepped range (with
// wrap-around when start > end), an explicit set of values, or a union of
// ranges. Build one with NewValRule, NewRangeRule, NewManyRule or
// NewRangesRule.
type FieldRule[T FieldRuleValue] = calsched_internal.FieldRule[T]

func NewValRule[T FieldRuleValue](v T) FieldRule[T] {
	return calsched_internal.NewValRule(v)
}

func NewRangeRule[T FieldRuleValue](start, end, step T) FieldRule[T] {
	return calsched_internal.NewRangeRule(start, end, step)
}

func NewManyRule[T FieldRuleValue](values ...T) FieldRule[T] {
	return calsched_internal.NewManyRule(values...)
}

func NewRangesRule[T FieldRuleValue](ranges ...[3]T) FieldRule[T] {
	return calsched_internal.NewRangesRule(ranges...)
}

// RecurrenceRuleSet is a set of FieldRule constraints, one per calendar
// field, describing the occurrences of a recurring event. Build one with
// NewRecurrenceRuleSet and the chained Rule/At/On/From...To builder methods.
type RecurrenceRuleSet = calsched_internal.RecurrenceRuleSet

func NewRecurrenceRuleSet() *RecurrenceRuleSet {
	return calsched_internal.NewRecurrenceRuleSet()
}

// SchedulingRule is a single scheduling directive: fire once at a given
// time, recur per a RecurrenceRuleSet, or recur per a standard 5-field cron
// expression.
type SchedulingRule = calsched_internal.SchedulingRule

func OnceRule(t time.Time) SchedulingRule {
	return calsched_internal.OnceRule(t)
}

func RecurRule(rs *RecurrenceRuleSet) SchedulingRule {
	return calsched_internal.RecurRule(rs)
}

func CronRule(expr string) (SchedulingRule, error) {
	return calsched_internal.CronRule(expr)
}

// TaskHandle is the caller-visible state of a scheduled task: whether it is
// running, stopped or removed, and its last/next run times. Returned by
// Schedule/ScheduleManyRules on both scheduler flavors; copies of a handle
// observe the same underlying state.
type TaskHandle = calsched_internal.TaskHandle

// ThreadAction is the work a ThreadScheduler task runs each time its rule
// fires.
type ThreadAction = calsched_internal.ThreadAction

// ThreadScheduler drives each scheduled task from its own dedicated
// goroutine, sleeping via a timer between occurrences.
type ThreadScheduler = calsched_internal.ThreadScheduler

func NewThreadScheduler() *ThreadScheduler {
	return calsched_internal.NewThreadScheduler()
}

// AsyncAction is the work an AsyncScheduler task runs each time its rule
// fires.
type AsyncAction = calsched_internal.AsyncAction

// AsyncFuture is a bare future: calling it starts cooperative work and the
// returned channel is closed when that work completes. See
// AsyncScheduler.ScheduleFut.
type AsyncFuture = calsched_internal.AsyncFuture

// AsyncSchedulerConfig configures an AsyncScheduler's worker pool size.
type AsyncSchedulerConfig = calsched_internal.AsyncSchedulerConfig

func DefaultAsyncSchedulerConfig() *AsyncSchedulerConfig {
	return calsched_internal.DefaultAsyncSchedulerConfig()
}

// AsyncScheduler drives every scheduled task from a single dispatcher
// goroutine backed by a min-heap of pending occurrences and a bounded
// worker pool that runs the fired actions.
type AsyncScheduler = calsched_internal.AsyncScheduler

func NewAsyncScheduler(cfg *AsyncSchedulerConfig) *AsyncScheduler {
	return calsched_internal.NewAsyncScheduler(cfg)
}

// Job is a unit of work submitted to a WorkerPool.
type Job = calsched_internal.Job

// WorkerPool runs submitted Jobs on a fixed-size goroutine pool.
type WorkerPool = calsched_internal.WorkerPool

func NewWorkerPool(capacity int) (*WorkerPool, error) {
	return calsched_internal.NewWorkerPool(capacity)
}

func NewDefaultWorkerPool() (*WorkerPool, error) {
	return calsched_internal.NewDefaultWorkerPool()
}

// WorkerPoolConfig configures a WorkerPool's size; NumWorkers may be set to
// WorkerPoolConfigNumWorkersDefault to defer to the available CPU count.
type WorkerPoolConfig = calsched_internal.WorkerPoolConfig

const WorkerPoolConfigNumWorkersDefault = calsched_internal.WorkerPoolConfigNumWorkersDefault

func DefaultWorkerPoolConfig() *WorkerPoolConfig {
	return calsched_internal.DefaultWorkerPoolConfig()
}

func NewWorkerPoolFromConfig(cfg *WorkerPoolConfig) (*WorkerPool, error) {
	return calsched_internal.NewWorkerPoolFromConfig(cfg)
}

// Sentinel errors returned by the scheduler and worker pool APIs, suitable
// for errors.Is.
var (
	ErrTaskNotFound           = calsched_internal.ErrTaskNotFound
	ErrTaskAlreadyExists      = calsched_internal.ErrTaskAlreadyExists
	ErrRuleNeverFires         = calsched_internal.ErrRuleNeverFires
	ErrWorkerPoolZeroCapacity = calsched_internal.ErrWorkerPoolZeroCapacity
)

// Config groups the library's own configuration sections (logger, worker
// pool, scheduler), loaded from a YAML file under the "calsched_config" key.
type Config = calsched_internal.Config

func DefaultConfig() *Config {
	return calsched_internal.DefaultConfig()
}

// LoadConfig loads the configuration from the given YAML file, or from buf
// if it is non-nil (primarily for tests). Sections other than
// "calsched_config" are ignored, so an embedding application can keep its
// own sections in the same file.
func LoadConfig(cfgFile string, buf []byte) (*Config, error) {
	return calsched_internal.LoadConfig(cfgFile, buf)
}

// LoggerConfig configures the root logger (level, json vs. text, output
// file with rotation).
type LoggerConfig = calsched_internal.LoggerConfig

func DefaultLoggerConfig() *LoggerConfig {
	return calsched_internal.DefaultLoggerConfig()
}

func SetLogger(logCfg *LoggerConfig) error {
	return calsched_internal.SetLogger(logCfg)
}

// Create new component logger w/ comp=compName field:
func NewCompLogger(comp string) *logrus.Entry {
	return calsched_internal.NewCompLogger(comp)
}

// The root logger. Needed only for tests where the logger is captured (see
// calsched/testutils/log_collector.go), its actual type is obscured. The
// only use case for call is during tests, as follows:
//
//	func TestSomethingWithLogger(t *testing.T) {
//		tlc := calsched_testutils.NewTestLogCollect(t, calsched.GetRootLogger(), nil)
//		defer tlc.RestoreLog()
//		// Everything logged via the library's logger will be captured by
//		// the tlc object and it will be displayed in the test output at
//		// the end, if the test fails or if it is run in verbose mode.
//	}
func GetRootLogger() any { return calsched_internal.RootLogger }

// When logging files, the log file name is derived from the file path
// typically relative to the module root dir. The logger maintains a list of
// prefixes to strip and the following function will add the caller's module
// path to it. The latter is inferred from the caller's file path, going up
// N dirs. Typically the call is made from main.init() so the parameter is 0
// (assuming that main.go is at the root dir of the module).
func AddCallerSrcPathPrefixToLogger(upNDirs int) {
	// skip = 1 below to base the caller's path on the caller of this function.
	calsched_internal.AddCallerSrcPathPrefixToLogger(upNDirs, 1)
}
