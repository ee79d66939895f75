package version

import "testing"

func TestSetInfo(t *testing.T) {
	originalVersion := Version
	originalBuildTime := BuildTime
	originalGitCommit := GitCommit

	defer func() {
		Version = originalVersion
		BuildTime = originalBuildTime
		GitCommit = originalGitCommit
	}()

	SetInfo("1.0.0", "2024-01-01T00:00:00Z", "abc123")

	if Version != "1.0.0" {
		t.Errorf("Version = %s, want 1.0.0", Version)
	}
	if BuildTime != "2024-01-01T00:00:00Z" {
		t.Errorf("BuildTime = %s, want 2024-01-01T00:00:00Z", BuildTime)
	}
	if GitCommit != "abc123" {
		t.Errorf("GitCommit = %s, want abc123", GitCommit)
	}
}

func TestSetInfo_EmptyValuesKeepDefaults(t *testing.T) {
	originalVersion := Version
	defer func() { Version = originalVersion }()

	SetInfo("", "", "")

	if Version != originalVersion {
		t.Errorf("Version = %s, want %s", Version, originalVersion)
	}
}
