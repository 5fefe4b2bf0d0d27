package rlimit

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const (
	RLIMIT_AS     = "RLIMIT_AS"
	RLIMIT_CPU    = "RLIMIT_CPU"
	RLIMIT_CORE   = "RLIMIT_CORE"
	RLIMIT_DATA   = "RLIMIT_DATA"
	RLIMIT_FSIZE  = "RLIMIT_FSIZE"
	RLIMIT_NOFILE = "RLIMIT_NOFILE"
	RLIMIT_STACK  = "RLIMIT_STACK"
)

var resources = map[string]int{
	RLIMIT_AS:     unix.RLIMIT_AS,
	RLIMIT_CPU:    unix.RLIMIT_CPU,
	RLIMIT_CORE:   unix.RLIMIT_CORE,
	RLIMIT_DATA:   unix.RLIMIT_DATA,
	RLIMIT_FSIZE:  unix.RLIMIT_FSIZE,
	RLIMIT_NOFILE: unix.RLIMIT_NOFILE,
	RLIMIT_STACK:  unix.RLIMIT_STACK,
}

type Rlimit struct {
	Resource string `config:"resource" yaml:"resource" json:"resource"`
	Soft     uint64 `config:"soft" yaml:"soft" json:"soft"`
	Hard     uint64 `config:"hard" yaml:"hard" json:"hard"`
}

func (rl Rlimit) Validate() error {
	if _, ok := resources[rl.Resource]; !ok {
		return fmt.Errorf("unknown rlimit resource option '%s'", rl.Resource)
	}

	if rl.Soft > rl.Hard {
		return fmt.Errorf("%s soft limit %d exceeds hard limit %d", rl.Resource, rl.Soft, rl.Hard)
	}

	return nil
}

// ApplyLimit never raises a limit, values above the current hard limit
// are clamped to it.
func (rl Rlimit) ApplyLimit() error {
	if err := rl.Validate(); err != nil {
		return err
	}

	_, hard, err := Current(rl.Resource)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", rl.Resource, err)
	}

	limit := unix.Rlimit{Cur: min(rl.Soft, hard), Max: min(rl.Hard, hard)}
	if err := unix.Setrlimit(resources[rl.Resource], &limit); err != nil {
		return fmt.Errorf("failed to set %s: %w", rl.Resource, err)
	}

	return nil
}

func Current(name string) (soft, hard uint64, err error) {
	resource, ok := resources[name]
	if !ok {
		return 0, 0, fmt.Errorf("unknown rlimit resource option '%s'", name)
	}

	var current unix.Rlimit
	if err := unix.Getrlimit(resource, &current); err != nil {
		return 0, 0, err
	}

	return current.Cur, current.Max, nil
}
