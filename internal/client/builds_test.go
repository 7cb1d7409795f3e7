package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamcity-go/teamcity-client/internal/client"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

func TestBuildsList(t *testing.T) {
	tests := []struct {
		name        string
		opts        *teamcity.BuildListOptions
		wantLocator string
	}{
		{
			name:        "defaults",
			opts:        nil,
			wantLocator: "defaultFilter:false,count:10000",
		},
		{
			name:        "build type and count",
			opts:        &teamcity.BuildListOptions{BuildTypeID: "Tools_Build", Count: 25},
			wantLocator: "defaultFilter:false,count:25,buildType:(id:Tools_Build)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, "/app/rest/builds", request.URL.Path)
				assert.Equal(t, tt.wantLocator, request.URL.Query().Get("locator"))

				_ = json.NewEncoder(writer).Encode(teamcity.BuildList{
					Count:  2,
					Builds: []teamcity.Build{{ID: 2, Status: "SUCCESS"}, {ID: 1, Status: "FAILURE"}},
				})
			}))
			defer server.Close()

			builds, err := client.NewTestClient(server.URL).Builds().List(t.Context(), tt.opts)
			require.NoError(t, err)
			require.Len(t, builds, 2)
			assert.Equal(t, int64(2), builds[0].ID)
		})
	}
}

func TestBuildsListDetails(t *testing.T) {
	var paths []string

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		paths = append(paths, request.URL.Path)

		switch request.URL.Path {
		case "/app/rest/builds":
			_ = json.NewEncoder(writer).Encode(teamcity.BuildList{
				Count:  1,
				Builds: []teamcity.Build{{ID: 5}},
			})
		case "/app/rest/builds/id:5":
			_ = json.NewEncoder(writer).Encode(teamcity.Build{
				ID:         5,
				Status:     "SUCCESS",
				StatusText: "Tests passed: 120",
			})
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	builds, err := client.NewTestClient(server.URL).Builds().List(t.Context(), &teamcity.BuildListOptions{Details: true})
	require.NoError(t, err)
	require.Len(t, builds, 1)
	assert.Equal(t, "Tests passed: 120", builds[0].StatusText)
	assert.Equal(t, []string{"/app/rest/builds", "/app/rest/builds/id:5"}, paths)
}

func TestBuildsListByDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		locator := request.URL.Query().Get("locator")
		assert.Equal(t, "defaultFilter:false,count:10000,startDate:20240801T000000+0000,finishDate:20240802T000000+0000", locator)

		_ = json.NewEncoder(writer).Encode(teamcity.BuildList{})
	}))
	defer server.Close()

	_, err := client.NewTestClient(server.URL).Builds().
		ListByDate(t.Context(), "20240801T000000+0000", "20240802T000000+0000", nil)
	require.NoError(t, err)
}

func TestBuildsListByLocator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		locator := request.URL.Query().Get("locator")
		assert.Equal(t, "defaultFilter:false,count:10000,branch:(name:main),buildType:(id:X)", locator)

		_ = json.NewEncoder(writer).Encode(teamcity.BuildList{})
	}))
	defer server.Close()

	_, err := client.NewTestClient(server.URL).Builds().
		ListByLocator(t.Context(), "branch:(name:main)", &teamcity.BuildListOptions{BuildTypeID: "X"})
	require.NoError(t, err)
}

func TestBuildsGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/app/rest/builds/id:35193036", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(teamcity.Build{
			ID:          35193036,
			BuildTypeID: "Tools_Build",
			Number:      "512",
			State:       "finished",
		})
	}))
	defer server.Close()

	build, err := client.NewTestClient(server.URL).Builds().Get(t.Context(), 35193036)
	require.NoError(t, err)
	assert.Equal(t, "512", build.Number)
	assert.Equal(t, "finished", build.State)
}

func TestBuildsLatest(t *testing.T) {
	t.Run("successful only", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			switch request.URL.Path {
			case "/app/rest/builds":
				assert.Equal(t, "buildType:(id:X),count:1,status:SUCCESS", request.URL.Query().Get("locator"))
				_ = json.NewEncoder(writer).Encode(teamcity.BuildList{Count: 1, Builds: []teamcity.Build{{ID: 9}}})
			case "/app/rest/builds/id:9":
				_ = json.NewEncoder(writer).Encode(teamcity.Build{ID: 9, Status: "SUCCESS"})
			default:
				writer.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		build, err := client.NewTestClient(server.URL).Builds().Latest(t.Context(), "X", true)
		require.NoError(t, err)
		assert.Equal(t, int64(9), build.ID)
	})

	t.Run("no builds", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(teamcity.BuildList{})
		}))
		defer server.Close()

		_, err := client.NewTestClient(server.URL).Builds().Latest(t.Context(), "X", false)
		require.ErrorIs(t, err, teamcity.ErrNoBuilds)
	})
}

func TestBuildsDependencies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		locator := request.URL.Query().Get("locator")
		assert.Contains(t, locator, "snapshotDependency(to:(id:42))")
		assert.Contains(t, locator, "or:(personal:false,and:(personal:true,user:current))")
		assert.NotEmpty(t, request.URL.Query().Get("fields"))

		_ = json.NewEncoder(writer).Encode(teamcity.BuildList{Count: 1, Builds: []teamcity.Build{{ID: 41}}})
	}))
	defer server.Close()

	builds, err := client.NewTestClient(server.URL).Builds().Dependencies(t.Context(), 42, 0)
	require.NoError(t, err)
	require.Len(t, builds, 1)
	assert.Equal(t, int64(41), builds[0].ID)
}

func TestBuildsActualParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/app/rest/builds/id:7/resulting-properties", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(teamcity.Properties{
			Count: 2,
			Properties: []teamcity.Property{
				{Name: "build.number", Value: "512"},
				{Name: "env.BRANCH", Value: "main"},
			},
		})
	}))
	defer server.Close()

	tc := client.NewTestClient(server.URL)

	props, err := tc.Builds().ActualParameters(t.Context(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, props.Count)

	value, err := tc.Builds().ActualParameter(t.Context(), 7, "build.number")
	require.NoError(t, err)
	assert.Equal(t, "512", value)

	_, err = tc.Builds().ActualParameter(t.Context(), 7, "missing")
	require.ErrorIs(t, err, teamcity.ErrPropertyNotFound)
}

func TestBuildsCanceledInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_ = json.NewEncoder(writer).Encode(teamcity.Build{
			ID: 3,
			CanceledInfo: &teamcity.Comment{
				Text: "superseded",
				User: &teamcity.User{Username: "alice"},
			},
		})
	}))
	defer server.Close()

	info, err := client.NewTestClient(server.URL).Builds().CanceledInfo(t.Context(), 3)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "superseded", info.Text)
}

func TestBuildsSteps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/app/rest/builds/id:8":
			_ = json.NewEncoder(writer).Encode(teamcity.Build{ID: 8, BuildTypeID: "Tools_Build"})
		case "/app/rest/buildTypes/id:Tools_Build/steps":
			_ = json.NewEncoder(writer).Encode(teamcity.StepList{
				Count: 1,
				Steps: []teamcity.Step{{ID: "RUNNER_1", Name: "compile", Type: "simpleRunner"}},
			})
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	steps, err := client.NewTestClient(server.URL).Builds().Steps(t.Context(), 8)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "compile", steps[0].Name)
}

func TestBuildsLog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/app/rest/downloadBuildLog.html", request.URL.Path)
		assert.Equal(t, "11", request.URL.Query().Get("buildId"))
		assert.Equal(t, "text/plain", request.Header.Get("Accept"))

		_, _ = writer.Write([]byte("[00:00:01] Step 1/3: compile\n"))
	}))
	defer server.Close()

	log, err := client.NewTestClient(server.URL).Builds().Log(t.Context(), 11)
	require.NoError(t, err)
	assert.Contains(t, log, "Step 1/3")
}

func TestBuildsCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/app/rest/builds/id:13", request.URL.Path)

		var body teamcity.CancelRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "wrong branch", body.Comment)
		assert.True(t, body.ReaddIntoQueue)

		_ = json.NewEncoder(writer).Encode(teamcity.Build{ID: 13, State: "finished"})
	}))
	defer server.Close()

	build, err := client.NewTestClient(server.URL).Builds().Cancel(t.Context(), 13, "wrong branch", true)
	require.NoError(t, err)
	assert.Equal(t, int64(13), build.ID)
}

func TestBuildsGetFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := client.NewTestClient(server.URL).Builds().Get(t.Context(), 999)
	require.Error(t, err)
	assert.True(t, teamcity.IsNotFound(err))
}
