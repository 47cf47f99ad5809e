// Count available CPUs based on affinity

//go:build !linux

package calsched_internal

import (
	"runtime"
)

func GetAvailableCPUCount() int {
	return runtime.NumCPU()
}
