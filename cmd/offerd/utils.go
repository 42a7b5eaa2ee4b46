package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/arkade-os/offerd/pkg/api"
	"github.com/arkade-os/offerd/pkg/order"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const (
	timeout = 15 * time.Second

	// Native amounts are shown in base units and with 18 decimals.
	displayDecimals = 18
)

func post[T any](url string, body any) (result T, err error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return
	}
	req.Header.Add("Content-Type", "application/json")
	return do[T](req)
}

func get[T any](url string) (result T, err error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return
	}
	req.Header.Add("Content-Type", "application/json")
	return do[T](req)
}

func do[T any](req *http.Request) (result T, err error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return
	}
	// nolint
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return
	}
	if resp.StatusCode != http.StatusOK {
		var errResp api.ErrorResponse
		if jsonErr := json.Unmarshal(buf, &errResp); jsonErr == nil && errResp.Name != "" {
			err = fmt.Errorf("%s: %s", errResp.Name, errResp.Message)
			return
		}
		err = fmt.Errorf("request failed: %s", strings.TrimSpace(string(buf)))
		return
	}

	err = json.Unmarshal(buf, &result)
	return
}

// getUrl resolves a url flag, an explicit flag wins over OFFERD_<FLAG>.
func getUrl(ctx *cli.Context, flagName string) string {
	url := ctx.String(flagName)
	if !ctx.IsSet(flagName) {
		if fromEnv := viper.GetString(flagName); fromEnv != "" {
			url = fromEnv
		}
	}
	return strings.TrimSuffix(url, "/")
}

func getPrivateKey(ctx *cli.Context) (*btcec.PrivateKey, error) {
	prvkey := ctx.String(prvkeyFlagName)
	if prvkey == "" {
		prvkey = viper.GetString(prvkeyFlagName)
	}
	if prvkey == "" {
		return nil, fmt.Errorf("missing private key, set --%s or OFFERD_PRVKEY", prvkeyFlagName)
	}
	return order.ParsePrivateKey(prvkey)
}

func parseAmount(amount, name string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(amount, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid %s %s", name, amount)
	}
	return v, nil
}

func formatAmount(amount string) string {
	v, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return amount
	}
	display := decimal.NewFromBigInt(v, -displayDecimals)
	return fmt.Sprintf("%s (%s)", amount, display.String())
}

func printJSON(resp any) error {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return err
	}
	fmt.Println(string(jsonBytes))
	return nil
}
