package main

import (
	"fmt"
	"math/big"
	"net/url"

	"github.com/arkade-os/offerd/pkg/api"
	"github.com/arkade-os/offerd/pkg/order"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
)

var (
	orderCmd = &cli.Command{
		Name:  "order",
		Usage: "Sign and quote sell orders",
		Subcommands: []*cli.Command{
			orderSignCmd,
			orderQuoteCmd,
		},
	}
	orderSignCmd = &cli.Command{
		Name:  "sign",
		Usage: "Sign a sell order with the seller key, the live nonce is used if not given",
		Flags: []cli.Flag{
			urlFlag, prvkeyFlag, assetFlag, unitIdFlag, priceFlag, offeredFlag, nonceFlag,
		},
		Action: orderSignAction,
	}
	orderQuoteCmd = &cli.Command{
		Name:   "quote",
		Usage:  "Get the live nonce, the remaining fill and the hash to sign of an order",
		Flags:  []cli.Flag{urlFlag, assetFlag, unitIdFlag, ownerFlag, priceFlag, offeredFlag},
		Action: orderQuoteAction,
	}
	buyCmd = &cli.Command{
		Name:  "buy",
		Usage: "Settle a signed order, the payment is authorized with the buyer key",
		Flags: []cli.Flag{
			urlFlag, prvkeyFlag, assetFlag, unitIdFlag, ownerFlag,
			offeredFlag, buyingFlag, signatureFlag, grossFlag,
		},
		Action: buyAction,
	}
	approveCmd = &cli.Command{
		Name:   "approve",
		Usage:  "Approve or revoke a transfer operator for all the units of an asset",
		Flags:  []cli.Flag{urlFlag, prvkeyFlag, assetFlag, operatorFlag, revokeFlag},
		Action: approveAction,
	}
	mintCmd = &cli.Command{
		Name:  "mint",
		Usage: "Authorize unit classes",
		Subcommands: []*cli.Command{
			mintSignCmd,
		},
	}
	mintSignCmd = &cli.Command{
		Name:   "sign",
		Usage:  "Sign a mint authorization with the mint signer key",
		Flags:  []cli.Flag{prvkeyFlag, assetFlag, unitIdFlag},
		Action: mintSignAction,
	}
	adminCmd = &cli.Command{
		Name:  "admin",
		Usage: "Manage the fee rate directory and the nonce registry",
		Subcommands: []*cli.Command{
			adminRatesCmd,
			adminFeeRecipientCmd,
			adminProxyCmd,
			adminOperatorCmd,
			adminDepositCmd,
		},
	}
	adminRatesCmd = &cli.Command{
		Name:   "rates",
		Usage:  "Update the buyer and seller fee rates",
		Flags:  []cli.Flag{adminUrlFlag, buyerFeeFlag, sellerFeeFlag},
		Action: adminRatesAction,
	}
	adminFeeRecipientCmd = &cli.Command{
		Name:   "fee-recipient",
		Usage:  "Update the marketplace fee recipient",
		Flags:  []cli.Flag{adminUrlFlag, recipientFlag},
		Action: adminFeeRecipientAction,
	}
	adminProxyCmd = &cli.Command{
		Name:  "proxy",
		Usage: "Manage the proxies allowed to read the fee rates",
		Subcommands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Register a proxy",
				Flags:  []cli.Flag{adminUrlFlag, proxyFlag},
				Action: adminProxyAction(api.AdminService_AddProxy_FullMethodName, "add"),
			},
			{
				Name:   "remove",
				Usage:  "Unregister a proxy",
				Flags:  []cli.Flag{adminUrlFlag, proxyFlag},
				Action: adminProxyAction(api.AdminService_RemoveProxy_FullMethodName, "remove"),
			},
		},
	}
	adminOperatorCmd = &cli.Command{
		Name:   "operator",
		Usage:  "Update the operator allowed to advance nonces",
		Flags:  []cli.Flag{adminUrlFlag, operatorFlag},
		Action: adminOperatorAction,
	}
	adminDepositCmd = &cli.Command{
		Name:   "deposit",
		Usage:  "Credit native balance to an account",
		Flags:  []cli.Flag{adminUrlFlag, addressFlag, amountFlag},
		Action: adminDepositAction,
	}
	walletCmd = &cli.Command{
		Name:  "wallet",
		Usage: "Inspect native balances",
		Subcommands: []*cli.Command{
			walletBalanceCmd,
		},
	}
	walletBalanceCmd = &cli.Command{
		Name:   "balance",
		Usage:  "Get the native balance of an account",
		Flags:  []cli.Flag{urlFlag, addressFlag},
		Action: walletBalanceAction,
	}
)

func orderSignAction(ctx *cli.Context) error {
	key, err := getPrivateKey(ctx)
	if err != nil {
		return err
	}
	asset, err := order.ParseAddress(ctx.String(assetFlagName))
	if err != nil {
		return err
	}
	unitId, err := order.ParseUnitID(ctx.String(unitIdFlagName))
	if err != nil {
		return err
	}
	price, err := parseAmount(ctx.String(priceFlagName), "price")
	if err != nil {
		return err
	}
	owner := order.AddressFromPubKey(key.PubKey())

	nonce := ctx.Uint64(nonceFlagName)
	if !ctx.IsSet(nonceFlagName) {
		endpoint := fmt.Sprintf(
			"%s/v1/nonce/%s/%s/%s",
			getUrl(ctx, urlFlagName), asset.Hex(), unitId.Hex(), owner.Hex(),
		)
		resp, err := get[api.GetNonceResponse](endpoint)
		if err != nil {
			return fmt.Errorf("failed to fetch nonce: %s", err)
		}
		nonce = resp.Nonce
	}

	o := order.Order{
		Asset:         asset,
		UnitId:        unitId,
		PricePerUnit:  price,
		OfferedAmount: ctx.Uint64(offeredFlagName),
		Nonce:         nonce,
	}
	if err := o.Validate(); err != nil {
		return err
	}
	sig, err := order.Sign(key, o.SigningHash())
	if err != nil {
		return err
	}

	return printJSON(map[string]any{
		"owner":       owner.Hex(),
		"nonce":       nonce,
		"digest":      o.Digest().Hex(),
		"signingHash": o.SigningHash().Hex(),
		"signature":   hexutil.Encode(sig),
	})
}

func orderQuoteAction(ctx *cli.Context) error {
	resp, err := post[api.QuoteOrderResponse](
		getUrl(ctx, urlFlagName)+"/v1/order/quote",
		api.QuoteOrderRequest{
			Asset:         ctx.String(assetFlagName),
			UnitId:        ctx.String(unitIdFlagName),
			Owner:         ctx.String(ownerFlagName),
			PricePerUnit:  ctx.String(priceFlagName),
			OfferedAmount: ctx.Uint64(offeredFlagName),
		},
	)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func buyAction(ctx *cli.Context) error {
	key, err := getPrivateKey(ctx)
	if err != nil {
		return err
	}
	buying := ctx.Uint64(buyingFlagName)
	if buying == 0 {
		return fmt.Errorf("buying amount must be greater than zero")
	}
	gross, err := parseAmount(ctx.String(grossFlagName), "gross payment")
	if err != nil {
		return err
	}
	price, rem := new(big.Int).QuoRem(gross, new(big.Int).SetUint64(buying), new(big.Int))
	if rem.Sign() != 0 {
		return fmt.Errorf("gross payment is not a multiple of the buying amount")
	}
	baseUrl := getUrl(ctx, urlFlagName)

	quote, err := post[api.QuoteOrderResponse](baseUrl+"/v1/order/quote", api.QuoteOrderRequest{
		Asset:         ctx.String(assetFlagName),
		UnitId:        ctx.String(unitIdFlagName),
		Owner:         ctx.String(ownerFlagName),
		PricePerUnit:  price.String(),
		OfferedAmount: ctx.Uint64(offeredFlagName),
	})
	if err != nil {
		return fmt.Errorf("failed to quote order: %s", err)
	}
	buyer := order.AddressFromPubKey(key.PubKey())
	auth := order.BuyAuthorization{
		Order:        common.HexToHash(quote.SigningHash),
		Filled:       quote.Filled,
		BuyingAmount: buying,
		GrossPayment: gross,
		Buyer:        buyer,
	}
	buyerSig, err := order.Sign(key, auth.SigningHash())
	if err != nil {
		return err
	}

	resp, err := post[api.BuyResponse](
		baseUrl+"/v1/order/buy",
		api.BuyRequest{
			Buyer:          buyer.Hex(),
			Asset:          ctx.String(assetFlagName),
			UnitId:         ctx.String(unitIdFlagName),
			Owner:          ctx.String(ownerFlagName),
			OfferedAmount:  ctx.Uint64(offeredFlagName),
			BuyingAmount:   buying,
			Signature:      ctx.String(signatureFlagName),
			GrossPayment:   gross.String(),
			BuyerSignature: hexutil.Encode(buyerSig),
		},
	)
	if err != nil {
		return err
	}
	if resp.Settlement == nil {
		return fmt.Errorf("missing settlement in response")
	}

	payouts := make([]map[string]string, 0, len(resp.Settlement.Payouts))
	for _, p := range resp.Settlement.Payouts {
		payouts = append(payouts, map[string]string{
			"kind":      p.Kind,
			"recipient": p.Recipient,
			"amount":    formatAmount(p.Amount),
		})
	}
	return printJSON(map[string]any{
		"id":            resp.Settlement.Id,
		"amount":        resp.Settlement.Amount,
		"filledAmount":  resp.Settlement.FilledAmount,
		"grossPayment":  formatAmount(resp.Settlement.GrossPayment),
		"nonceAdvanced": resp.Settlement.NonceAdvanced,
		"payouts":       payouts,
	})
}

func approveAction(ctx *cli.Context) error {
	key, err := getPrivateKey(ctx)
	if err != nil {
		return err
	}
	asset, err := order.ParseAddress(ctx.String(assetFlagName))
	if err != nil {
		return err
	}
	operator, err := order.ParseAddress(ctx.String(operatorFlagName))
	if err != nil {
		return err
	}
	owner := order.AddressFromPubKey(key.PubKey())
	baseUrl := getUrl(ctx, urlFlagName)

	nonce, err := get[api.GetApprovalNonceResponse](
		fmt.Sprintf("%s/v1/approval/nonce/%s", baseUrl, owner.Hex()),
	)
	if err != nil {
		return fmt.Errorf("failed to fetch approval nonce: %s", err)
	}
	auth := order.ApprovalAuthorization{
		Asset:    asset,
		Owner:    owner,
		Operator: operator,
		Approved: !ctx.Bool(revokeFlagName),
		Nonce:    nonce.Nonce,
	}
	sig, err := order.Sign(key, auth.SigningHash())
	if err != nil {
		return err
	}
	if _, err := post[api.SetApprovalForAllResponse](
		baseUrl+"/v1/approval",
		api.SetApprovalForAllRequest{
			Asset:     asset.Hex(),
			Owner:     owner.Hex(),
			Operator:  operator.Hex(),
			Approved:  auth.Approved,
			Signature: hexutil.Encode(sig),
		},
	); err != nil {
		return err
	}
	return printJSON(map[string]any{
		"owner":    owner.Hex(),
		"operator": operator.Hex(),
		"approved": auth.Approved,
		"nonce":    nonce.Nonce,
	})
}

func mintSignAction(ctx *cli.Context) error {
	key, err := getPrivateKey(ctx)
	if err != nil {
		return err
	}
	asset, err := order.ParseAddress(ctx.String(assetFlagName))
	if err != nil {
		return err
	}
	unitId, err := order.ParseUnitID(ctx.String(unitIdFlagName))
	if err != nil {
		return err
	}

	auth := order.MintAuthorization{Asset: asset, UnitId: unitId}
	sig, err := order.Sign(key, auth.SigningHash())
	if err != nil {
		return err
	}
	return printJSON(map[string]string{
		"signer":    order.AddressFromPubKey(key.PubKey()).Hex(),
		"unitId":    unitId.Hex(),
		"signature": hexutil.Encode(sig),
	})
}

func adminRatesAction(ctx *cli.Context) error {
	if _, err := post[api.SetRatesResponse](
		getUrl(ctx, adminUrlFlagName)+"/v1/admin/fees/rates",
		api.SetRatesRequest{
			BuyerFeeBps:  uint32(ctx.Uint(buyerFeeFlagName)),
			SellerFeeBps: uint32(ctx.Uint(sellerFeeFlagName)),
		},
	); err != nil {
		return err
	}
	return printFeeSettings(ctx)
}

func adminFeeRecipientAction(ctx *cli.Context) error {
	if _, err := post[api.SetFeeRecipientResponse](
		getUrl(ctx, adminUrlFlagName)+"/v1/admin/fees/recipient",
		api.SetFeeRecipientRequest{Recipient: ctx.String(recipientFlagName)},
	); err != nil {
		return err
	}
	return printFeeSettings(ctx)
}

func adminProxyAction(method, path string) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if _, err := post[api.ProxyResponse](
			fmt.Sprintf("%s/v1/admin/proxy/%s", getUrl(ctx, adminUrlFlagName), path),
			api.ProxyRequest{Proxy: ctx.String(proxyFlagName)},
		); err != nil {
			return fmt.Errorf("%s failed: %s", method, err)
		}
		return printFeeSettings(ctx)
	}
}

func adminOperatorAction(ctx *cli.Context) error {
	if _, err := post[api.SetOperatorResponse](
		getUrl(ctx, adminUrlFlagName)+"/v1/admin/operator",
		api.SetOperatorRequest{Operator: ctx.String(operatorFlagName)},
	); err != nil {
		return err
	}
	return printFeeSettings(ctx)
}

func adminDepositAction(ctx *cli.Context) error {
	resp, err := post[api.DepositResponse](
		getUrl(ctx, adminUrlFlagName)+"/v1/admin/deposit",
		api.DepositRequest{
			Address: ctx.String(addressFlagName),
			Amount:  ctx.String(amountFlagName),
		},
	)
	if err != nil {
		return err
	}
	return printJSON(map[string]string{
		"address": ctx.String(addressFlagName),
		"balance": formatAmount(resp.Balance),
	})
}

func printFeeSettings(ctx *cli.Context) error {
	settings, err := get[api.GetFeeSettingsResponse](
		getUrl(ctx, adminUrlFlagName) + "/v1/admin/fees",
	)
	if err != nil {
		return err
	}
	return printJSON(settings)
}

func walletBalanceAction(ctx *cli.Context) error {
	endpoint := fmt.Sprintf(
		"%s/v1/balance/%s", getUrl(ctx, urlFlagName), url.PathEscape(ctx.String(addressFlagName)),
	)
	resp, err := get[api.GetBalanceResponse](endpoint)
	if err != nil {
		return err
	}
	return printJSON(map[string]string{
		"address": ctx.String(addressFlagName),
		"balance": formatAmount(resp.Balance),
	})
}
