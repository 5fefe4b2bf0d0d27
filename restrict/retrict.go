package restrict

import (
	"errors"
	"fmt"
	"syscall"

	"codeberg.org/iklabib/metriccull/configs"
	"codeberg.org/iklabib/metriccull/rlimit"
	"codeberg.org/iklabib/metriccull/util"
	"github.com/elastic/go-seccomp-bpf"
	"github.com/moby/sys/user"
	"github.com/rs/zerolog/log"
	"github.com/shoenig/go-landlock"
	"golang.org/x/sys/unix"
)

var (
	ErrRootTarget  = errors.New("uid 0 is not allowed")
	ErrPartialDrop = errors.New("privileges partially dropped")
)

type step struct {
	name string
	fn   func() error
}

// Apply restricts the current process. It is irreversible and must run
// before any untrusted input is read.
func Apply(sandbox configs.Sandbox) error {
	return apply(sandbox.Mandatory, []step{
		{"privileges", func() error { return DropPrivileges(sandbox.User) }},
		{"rlimits", func() error { return SetRlimits(sandbox.Rlimits) }},
		{"landlock", func() error { return EnforceLandlock(sandbox.Files, sandbox.Mandatory) }},
		{"seccomp", func() error { return EnforceSeccomp(sandbox.Seccomp) }},
	})
}

func apply(mandatory bool, steps []step) error {
	for _, s := range steps {
		err := s.fn()

		// a half switched identity is never tolerated
		if errors.Is(err, ErrPartialDrop) {
			return fmt.Errorf("%s: %w", s.name, err)
		}

		if err == nil {
			log.Debug().Str("step", s.name).Msg("sandbox step applied")
			continue
		}

		if err := util.Tolerate(mandatory, s.name, err); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	return nil
}

// DropPrivileges switches to name when running as root, otherwise it is a
// no-op.
func DropPrivileges(name string) error {
	if name == "" || unix.Getuid() != 0 {
		return nil
	}

	u, err := user.LookupUser(name)
	if err != nil {
		return fmt.Errorf("failed to look up user %s: %w", name, err)
	}

	return PrivilegeDrop(u.Uid, u.Gid)
}

func PrivilegeDrop(uid, gid int) error {
	if uid == 0 {
		return ErrRootTarget
	}

	if err := syscall.Setgroups([]int{gid}); err != nil {
		return fmt.Errorf("failed to set groups: %w", err)
	}

	// groups are already replaced from here on
	if err := syscall.Setresgid(gid, gid, gid); err != nil {
		return fmt.Errorf("%w, failed to set gid: %w", ErrPartialDrop, err)
	}

	if err := syscall.Setresuid(uid, uid, uid); err != nil {
		return fmt.Errorf("%w, failed to set uid: %w", ErrPartialDrop, err)
	}

	return nil
}

func SetRlimits(rlimits []rlimit.Rlimit) error {
	for _, rl := range rlimits {
		if err := rl.ApplyLimit(); err != nil {
			return err
		}
	}
	return nil
}

// EnforceLandlock allows only the listed paths, an empty list denies all
// filesystem access. Already open descriptors such as stdin keep working.
func EnforceLandlock(files []string, mandatory bool) error {
	paths, err := parsePaths(files)
	if err != nil {
		return err
	}

	safety := landlock.OnlySupported
	if mandatory {
		safety = landlock.Mandatory
	}

	return landlock.New(paths...).Lock(safety)
}

func parsePaths(files []string) ([]*landlock.Path, error) {
	var paths []*landlock.Path
	for _, v := range files {
		lp, err := landlock.ParsePath(v)
		if err != nil {
			return nil, fmt.Errorf("invalid landlock rule '%s': %w", v, err)
		}
		paths = append(paths, lp)
	}
	return paths, nil
}

// EnforceSeccomp loads policy for every thread. A policy without syscall
// groups is not loaded, its zero default action would kill the process.
func EnforceSeccomp(policy seccomp.Policy) error {
	if len(policy.Syscalls) == 0 {
		return nil
	}

	if !seccomp.Supported() {
		return errors.New("seccomp is not supported")
	}

	filter := seccomp.Filter{
		NoNewPrivs: true,
		Flag:       seccomp.FilterFlagTSync,
		Policy:     policy,
	}

	return seccomp.LoadFilter(filter)
}
