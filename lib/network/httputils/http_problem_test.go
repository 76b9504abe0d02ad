package httputils

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"oceandao.io/gov/lib/errors"
)

func TestProblem(t *testing.T) {
	router := mux.NewRouter()

	statusProblem := NewStatusProblem(http.StatusBadRequest)
	detailedStatusProblem := NewDetailedStatusProblem(http.StatusBadRequest, "parameters are not enough")
	errorProblem := NewErrorProblem(errors.ErrorPollNotFound, http.StatusNotFound)

	router.HandleFunc("/problem_status_default", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 500, statusProblem)
	})
	router.HandleFunc("/problem_status_with_detail", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 500, detailedStatusProblem)
	})
	router.HandleFunc("/problem_with_error", func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, errors.ErrorPollNotFound)
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	{
		resp, err := http.Get(ts.URL + "/problem_status_default")
		require.NoError(t, err)
		defer resp.Body.Close()
		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(readByte, &m))
		require.Equal(t, statusProblem.Type, m["type"])
		require.Equal(t, float64(statusProblem.Status), m["status"])
		require.Empty(t, m["instance"])
	}

	{
		resp, err := http.Get(ts.URL + "/problem_status_with_detail")
		require.NoError(t, err)
		defer resp.Body.Close()
		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(readByte, &m))
		require.Equal(t, detailedStatusProblem.Detail, m["detail"])
	}

	{
		resp, err := http.Get(ts.URL + "/problem_with_error")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(readByte, &m))
		require.Equal(t, errorProblem.Type, m["type"])
		require.Equal(t, errorProblem.Title, m["title"])
	}
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, http.StatusNotFound, StatusCode(errors.ErrorPollNotFound))
	require.Equal(t, http.StatusForbidden, StatusCode(errors.ErrorUnauthorized))
	require.Equal(t, http.StatusConflict, StatusCode(errors.ErrorAlreadyInstantiated))
	require.Equal(t, http.StatusInternalServerError, StatusCode(errors.ErrorStorageCoreError))
}
