package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/pkg/profile"
)

// StartProfile starts a cpu or mem profile. An empty mode does nothing.
func StartProfile(mode string) (stop func(), err error) {
	var option func(*profile.Profile)

	switch mode {
	case "":
		return func() {}, nil

	case "cpu":
		option = profile.CPUProfile

	case "mem":
		option = profile.MemProfile

	default:
		return nil, errors.Newf("unknown profile mode %q", mode)
	}

	profiler := profile.Start(option, profile.ProfilePath("."), profile.NoShutdownHook)
	return profiler.Stop, nil
}
