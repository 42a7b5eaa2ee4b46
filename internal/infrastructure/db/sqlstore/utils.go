package sqlstore

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Unsigned counters are stored as BIGINT, the conversion preserves the bits
// so values above math.MaxInt64 round-trip unchanged.
func toInt64(v uint64) int64 {
	return int64(v)
}

func toUint64(v int64) uint64 {
	return uint64(v)
}

func parseBigInt(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func bigIntString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func joinAddresses(addrs []common.Address) string {
	hexes := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		hexes = append(hexes, addr.Hex())
	}
	return strings.Join(hexes, ",")
}

func splitAddresses(s string) []common.Address {
	if len(s) <= 0 {
		return nil
	}
	parts := strings.Split(s, ",")
	addrs := make([]common.Address, 0, len(parts))
	for _, p := range parts {
		addrs = append(addrs, common.HexToAddress(p))
	}
	return addrs
}

func fromUnixNano(ts int64) time.Time {
	return time.Unix(0, ts)
}
