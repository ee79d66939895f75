package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tweetwipe/tweetwipe/internal/filter"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name         string
		before       string
		repliesOnly  bool
		topLevelOnly bool
		wantMode     filter.Mode
		wantErr      bool
	}{
		{
			name:     "no flags",
			wantMode: filter.ModeAll,
		},
		{
			name:        "replies only",
			repliesOnly: true,
			wantMode:    filter.ModeRepliesOnly,
		},
		{
			name:         "top level only",
			topLevelOnly: true,
			wantMode:     filter.ModeTopLevelOnly,
		},
		{
			name:   "valid before date",
			before: "2020-06-15",
		},
		{
			name:    "bad before date",
			before:  "June 15th 2020",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := buildFilter(tt.before, tt.repliesOnly, tt.topLevelOnly)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, cfg.Mode)
			if tt.before != "" {
				require.NotNil(t, cfg.Before)
				assert.Equal(t, tt.before, cfg.Before.Format("2006-01-02"))
			}
		})
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["run"])
	assert.True(t, names["preview"])
	assert.True(t, names["version"])
}
