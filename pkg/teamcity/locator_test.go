package teamcity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

func TestLocator(t *testing.T) {
	tests := []struct {
		name    string
		locator *teamcity.Locator
		want    string
	}{
		{
			name:    "empty",
			locator: teamcity.NewLocator(),
			want:    "",
		},
		{
			name: "dimensions in insertion order",
			locator: teamcity.NewLocator().
				Add("defaultFilter", "false").
				AddInt("count", 10).
				BuildType("Tools_Build"),
			want: "defaultFilter:false,count:10,buildType:(id:Tools_Build)",
		},
		{
			name: "empty build type skipped",
			locator: teamcity.NewLocator().
				AddInt("count", 1).
				BuildType(""),
			want: "count:1",
		},
		{
			name: "raw fragment verbatim",
			locator: teamcity.NewLocator().
				AddRaw("branch:(name:main)").
				AddRaw("").
				AddInt("count", 5),
			want: "branch:(name:main),count:5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.locator.String())
		})
	}
}

func TestPropertiesValue(t *testing.T) {
	props := &teamcity.Properties{
		Count: 2,
		Properties: []teamcity.Property{
			{Name: "build.number", Value: "512"},
			{Name: "empty", Value: ""},
		},
	}

	value, ok := props.Value("build.number")
	assert.True(t, ok)
	assert.Equal(t, "512", value)

	// Present but empty is still found.
	value, ok = props.Value("empty")
	assert.True(t, ok)
	assert.Empty(t, value)

	_, ok = props.Value("missing")
	assert.False(t, ok)

	var nilProps *teamcity.Properties

	_, ok = nilProps.Value("anything")
	assert.False(t, ok)
}
