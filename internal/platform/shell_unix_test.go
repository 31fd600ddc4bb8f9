//go:build !windows

package platform

import (
	"reflect"
	"testing"
)

func TestDefaultShellOverrideWithArguments(t *testing.T) {
	t.Setenv(ShellOverrideEnv, "/usr/bin/fish -l")

	got := DefaultShell()
	want := []string{"/usr/bin/fish", "-l"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DefaultShell() = %v, want %v", got, want)
	}
}

func TestDefaultShellQuotedOverride(t *testing.T) {
	t.Setenv(ShellOverrideEnv, `"/opt/my shell/zsh" --login`)

	got := DefaultShell()
	want := []string{"/opt/my shell/zsh", "--login"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DefaultShell() = %v, want %v", got, want)
	}
}

func TestDefaultShellFallsBackToEnvShell(t *testing.T) {
	t.Setenv(ShellOverrideEnv, "")
	t.Setenv("SHELL", "/bin/bash")

	got := DefaultShell()
	if !reflect.DeepEqual(got, []string{"/bin/bash"}) {
		t.Errorf("DefaultShell() = %v, want [/bin/bash]", got)
	}
}

func TestDefaultShellLastResort(t *testing.T) {
	t.Setenv(ShellOverrideEnv, "")
	t.Setenv("SHELL", "")

	got := DefaultShell()
	if !reflect.DeepEqual(got, []string{"/bin/sh"}) {
		t.Errorf("DefaultShell() = %v, want [/bin/sh]", got)
	}
}

func TestRootVolumeFallback(t *testing.T) {
	volumes, err := RootVolume{}.ListVolumes()
	if err != nil {
		t.Fatalf("ListVolumes() error = %v", err)
	}
	if len(volumes) != 1 || volumes[0].Path != "/" || volumes[0].Kind != VolumeFixed {
		t.Errorf("ListVolumes() = %+v, want single fixed root", volumes)
	}
}
