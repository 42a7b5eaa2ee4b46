package main

import (
	"fmt"

	"github.com/arkade-os/offerd/internal/config"
	"github.com/urfave/cli/v2"
)

const (
	urlFlagName       = "url"
	adminUrlFlagName  = "admin-url"
	prvkeyFlagName    = "prvkey"
	assetFlagName     = "asset"
	unitIdFlagName    = "unit-id"
	ownerFlagName     = "owner"
	priceFlagName     = "price"
	offeredFlagName   = "offered"
	buyingFlagName    = "buying"
	nonceFlagName     = "nonce"
	signatureFlagName = "signature"
	grossFlagName     = "gross"
	buyerFeeFlagName  = "buyer-fee-bps"
	sellerFeeFlagName = "seller-fee-bps"
	recipientFlagName = "recipient"
	proxyFlagName     = "proxy"
	operatorFlagName  = "operator"
	addressFlagName   = "address"
	amountFlagName    = "amount"
	revokeFlagName    = "revoke"
)

var (
	urlFlag = &cli.StringFlag{
		Name:  urlFlagName,
		Usage: "the url where to reach the market api of offerd",
		Value: fmt.Sprintf("http://127.0.0.1:%d", config.DefaultPort),
	}
	adminUrlFlag = &cli.StringFlag{
		Name:  adminUrlFlagName,
		Usage: "the url where to reach the admin api of offerd",
		Value: fmt.Sprintf("http://127.0.0.1:%d", config.DefaultAdminPort),
	}
	prvkeyFlag = &cli.StringFlag{
		Name:  prvkeyFlagName,
		Usage: "hex encoded private key used to sign, can be set with OFFERD_PRVKEY",
	}
	assetFlag = &cli.StringFlag{
		Name:     assetFlagName,
		Usage:    "address of the asset contract",
		Required: true,
	}
	unitIdFlag = &cli.StringFlag{
		Name:     unitIdFlagName,
		Usage:    "unit id, either base 10 or 0x-prefixed hex",
		Required: true,
	}
	ownerFlag = &cli.StringFlag{
		Name:     ownerFlagName,
		Usage:    "address of the seller owning the units",
		Required: true,
	}
	priceFlag = &cli.StringFlag{
		Name:     priceFlagName,
		Usage:    "price per unit in base units",
		Required: true,
	}
	offeredFlag = &cli.Uint64Flag{
		Name:     offeredFlagName,
		Usage:    "number of units offered by the order",
		Required: true,
	}
	buyingFlag = &cli.Uint64Flag{
		Name:     buyingFlagName,
		Usage:    "number of units to buy",
		Required: true,
	}
	nonceFlag = &cli.Uint64Flag{
		Name:  nonceFlagName,
		Usage: "order nonce, the live one is fetched from offerd if not set",
	}
	signatureFlag = &cli.StringFlag{
		Name:     signatureFlagName,
		Usage:    "0x-prefixed order signature of the seller",
		Required: true,
	}
	grossFlag = &cli.StringFlag{
		Name:     grossFlagName,
		Usage:    "gross payment in base units",
		Required: true,
	}
	buyerFeeFlag = &cli.UintFlag{
		Name:     buyerFeeFlagName,
		Usage:    "buyer fee rate in basis points",
		Required: true,
	}
	sellerFeeFlag = &cli.UintFlag{
		Name:     sellerFeeFlagName,
		Usage:    "seller fee rate in basis points",
		Required: true,
	}
	recipientFlag = &cli.StringFlag{
		Name:     recipientFlagName,
		Usage:    "address of the marketplace fee recipient",
		Required: true,
	}
	proxyFlag = &cli.StringFlag{
		Name:     proxyFlagName,
		Usage:    "address of the proxy",
		Required: true,
	}
	operatorFlag = &cli.StringFlag{
		Name:     operatorFlagName,
		Usage:    "address of the operator",
		Required: true,
	}
	addressFlag = &cli.StringFlag{
		Name:     addressFlagName,
		Usage:    "account address",
		Required: true,
	}
	amountFlag = &cli.StringFlag{
		Name:     amountFlagName,
		Usage:    "amount in base units",
		Required: true,
	}
	revokeFlag = &cli.BoolFlag{
		Name:  revokeFlagName,
		Usage: "revoke the operator instead of approving it",
	}
)
