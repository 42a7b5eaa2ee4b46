package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arkade-os/offerd/pkg/api"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	fixtures := []struct {
		amount   string
		expected string
	}{
		{"0", "0 (0)"},
		{"487804878048781", "487804878048781 (0.000487804878048781)"},
		{"10000000000000000", "10000000000000000 (0.01)"},
		{"not a number", "not a number"},
	}
	for _, f := range fixtures {
		require.Equal(t, f.expected, formatAmount(f.amount))
	}
}

func TestParseAmount(t *testing.T) {
	v, err := parseAmount("1000", "amount")
	require.NoError(t, err)
	require.Equal(t, int64(1000), v.Int64())

	_, err = parseAmount("-1", "amount")
	require.Error(t, err)
	_, err = parseAmount("1.5", "amount")
	require.Error(t, err)
}

func TestDo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadRequest)
			// nolint
			json.NewEncoder(w).Encode(api.ErrorResponse{
				Code: 3, Name: "INCORRECT_SIGNATURE", Message: "bad signature",
			})
			return
		}
		// nolint
		json.NewEncoder(w).Encode(api.GetBalanceResponse{Balance: "42"})
	}))
	defer server.Close()

	resp, err := get[api.GetBalanceResponse](server.URL + "/balance")
	require.NoError(t, err)
	require.Equal(t, "42", resp.Balance)

	_, err = post[api.GetBalanceResponse](server.URL+"/fail", api.GetBalanceRequest{})
	require.EqualError(t, err, "INCORRECT_SIGNATURE: bad signature")
}
