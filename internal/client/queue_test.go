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

func TestQueueList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/app/rest/buildQueue", request.URL.Path)
		assert.Equal(t, "count:1000,buildType:(id:X)", request.URL.Query().Get("locator"))

		_ = json.NewEncoder(writer).Encode(teamcity.BuildList{
			Count:  1,
			Builds: []teamcity.Build{{ID: 21, State: "queued"}},
		})
	}))
	defer server.Close()

	builds, err := client.NewTestClient(server.URL).Queue().List(t.Context(), &teamcity.BuildListOptions{BuildTypeID: "X"})
	require.NoError(t, err)
	require.Len(t, builds, 1)
	assert.Equal(t, "queued", builds[0].State)
}

func TestQueueListDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/app/rest/buildQueue":
			_ = json.NewEncoder(writer).Encode(teamcity.BuildList{
				Count:  1,
				Builds: []teamcity.Build{{ID: 21}},
			})
		case "/app/rest/builds/id:21":
			_ = json.NewEncoder(writer).Encode(teamcity.Build{ID: 21, State: "queued", BranchName: "main"})
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	builds, err := client.NewTestClient(server.URL).Queue().List(t.Context(), &teamcity.BuildListOptions{Details: true})
	require.NoError(t, err)
	require.Len(t, builds, 1)
	assert.Equal(t, "main", builds[0].BranchName)
}

func TestQueueTrigger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/app/rest/buildQueue", request.URL.Path)
		assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

		var body teamcity.TriggerRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "X", body.BuildType.ID)
		assert.Equal(t, "feature/login", body.BranchName)

		_ = json.NewEncoder(writer).Encode(teamcity.Build{ID: 99, State: "queued"})
	}))
	defer server.Close()

	build, err := client.NewTestClient(server.URL).Queue().Trigger(t.Context(), &teamcity.TriggerRequest{
		BuildType:  teamcity.BuildTypeLocator{ID: "X"},
		BranchName: "feature/login",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), build.ID)
}

func TestQueueCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/app/rest/buildQueue/id:99", request.URL.Path)

		var body teamcity.CancelRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "no longer needed", body.Comment)
		assert.False(t, body.ReaddIntoQueue)

		_ = json.NewEncoder(writer).Encode(teamcity.Build{ID: 99})
	}))
	defer server.Close()

	build, err := client.NewTestClient(server.URL).Queue().Cancel(t.Context(), 99, "no longer needed")
	require.NoError(t, err)
	assert.Equal(t, int64(99), build.ID)
}
