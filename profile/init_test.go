package profile

import "testing"

func baseConfig() Config {
	return func() (string, string, bool) {
		return "", "", false
	}
}

func TestStartWithoutModeIsNoOp(t *testing.T) {
	profiler := baseConfig().Start()
	if profiler == nil {
		t.Fatal("Start() returned nil")
	}

	// Stop is always safely callable.
	profiler.Stop()
}

func TestStartWithModeIsSafeInEveryBuild(t *testing.T) {
	cfg := WithQuiet(true)(WithPath(t.TempDir())(WithMode("cpu")(baseConfig())))

	profiler := cfg.Start()
	if profiler == nil {
		t.Fatal("Start() returned nil")
	}

	profiler.Stop()
}

func TestOptionsCompose(t *testing.T) {
	cfg := WithMode("heap")(baseConfig())
	cfg = WithPath("/tmp/out")(cfg)
	cfg = WithQuiet(true)(cfg)

	mode, path, quiet := cfg()
	if mode != "heap" || path != "/tmp/out" || !quiet {
		t.Errorf("cfg() = (%q, %q, %v), want (heap, /tmp/out, true)",
			mode, path, quiet)
	}
}
