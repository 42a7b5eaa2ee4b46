package handlers

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/arkade-os/offerd/internal/core/application"
	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/arkade-os/offerd/pkg/api"
	"github.com/arkade-os/offerd/pkg/order"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

func parseAddress(addr, name string) (common.Address, error) {
	if len(addr) <= 0 {
		return common.Address{}, fmt.Errorf("missing %s", name)
	}
	parsed, err := order.ParseAddress(addr)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid %s: %s", name, err)
	}
	return parsed, nil
}

func parseUnitId(unitId string) (common.Hash, error) {
	return order.ParseUnitID(unitId)
}

func parseAmount(amount, name string) (*big.Int, error) {
	if len(amount) <= 0 {
		return nil, fmt.Errorf("missing %s", name)
	}
	value, ok := new(big.Int).SetString(strings.TrimSpace(amount), 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s: %s", name, amount)
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("invalid %s: must not be negative", name)
	}
	return value, nil
}

func parseSignature(sig, name string) ([]byte, error) {
	if len(sig) <= 0 {
		return nil, fmt.Errorf("missing %s", name)
	}
	buf, err := hexutil.Decode(sig)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", name, err)
	}
	if len(buf) != order.SignatureLength {
		return nil, fmt.Errorf(
			"invalid %s length %d, expected %d", name, len(buf), order.SignatureLength,
		)
	}
	return buf, nil
}

type orderKey struct {
	asset  common.Address
	unitId common.Hash
	owner  common.Address
}

func parseOrderKey(req *api.OrderKey) (*orderKey, error) {
	if req == nil {
		return nil, fmt.Errorf("missing request")
	}
	asset, err := parseAddress(req.Asset, "asset")
	if err != nil {
		return nil, err
	}
	unitId, err := parseUnitId(req.UnitId)
	if err != nil {
		return nil, err
	}
	owner, err := parseAddress(req.Owner, "owner")
	if err != nil {
		return nil, err
	}
	return &orderKey{asset, unitId, owner}, nil
}

func parseBuyRequest(req *api.BuyRequest) (*application.BuyRequest, error) {
	key, err := parseOrderKey(&api.OrderKey{
		Asset: req.GetAsset(), UnitId: req.GetUnitId(), Owner: req.GetOwner(),
	})
	if err != nil {
		return nil, err
	}
	buyer, err := parseAddress(req.GetBuyer(), "buyer")
	if err != nil {
		return nil, err
	}
	if req.GetOfferedAmount() == 0 {
		return nil, fmt.Errorf("missing offered amount")
	}
	if req.GetBuyingAmount() == 0 {
		return nil, fmt.Errorf("missing buying amount")
	}
	sig, err := parseSignature(req.GetSignature(), "signature")
	if err != nil {
		return nil, err
	}
	gross, err := parseAmount(req.GetGrossPayment(), "gross payment")
	if err != nil {
		return nil, err
	}
	buyerSig, err := parseSignature(req.GetBuyerSignature(), "buyer signature")
	if err != nil {
		return nil, err
	}
	return &application.BuyRequest{
		Buyer:          buyer,
		Asset:          key.asset,
		UnitId:         key.unitId,
		Owner:          key.owner,
		OfferedAmount:  req.GetOfferedAmount(),
		BuyingAmount:   req.GetBuyingAmount(),
		Signature:      sig,
		GrossPayment:   gross,
		BuyerSignature: buyerSig,
	}, nil
}

func parseApprovalRequest(
	req *api.SetApprovalForAllRequest,
) (*application.ApprovalRequest, error) {
	if req == nil {
		return nil, fmt.Errorf("missing request")
	}
	asset, err := parseAddress(req.Asset, "asset")
	if err != nil {
		return nil, err
	}
	owner, err := parseAddress(req.Owner, "owner")
	if err != nil {
		return nil, err
	}
	operator, err := parseAddress(req.Operator, "operator")
	if err != nil {
		return nil, err
	}
	sig, err := parseSignature(req.Signature, "signature")
	if err != nil {
		return nil, err
	}
	return &application.ApprovalRequest{
		Asset:     asset,
		Owner:     owner,
		Operator:  operator,
		Approved:  req.Approved,
		Signature: sig,
	}, nil
}

func parseMintRequest(req *api.MintRequest) (*application.MintRequest, error) {
	creator, err := parseAddress(req.GetCreator(), "creator")
	if err != nil {
		return nil, err
	}
	asset, err := parseAddress(req.GetAsset(), "asset")
	if err != nil {
		return nil, err
	}
	unitId, err := parseUnitId(req.GetUnitId())
	if err != nil {
		return nil, err
	}
	if req.GetSupply() == 0 {
		return nil, fmt.Errorf("missing supply")
	}
	royalties := make([]domain.RoyaltyFee, 0, len(req.GetRoyalties()))
	for i, royalty := range req.GetRoyalties() {
		recipient, err := parseAddress(royalty.Recipient, fmt.Sprintf("royalty %d recipient", i))
		if err != nil {
			return nil, err
		}
		royalties = append(royalties, domain.RoyaltyFee{Recipient: recipient, Bps: royalty.Bps})
	}
	sig, err := parseSignature(req.GetSignature(), "signature")
	if err != nil {
		return nil, err
	}
	return &application.MintRequest{
		Creator:   creator,
		Asset:     asset,
		UnitId:    unitId,
		Supply:    req.GetSupply(),
		Uri:       req.GetUri(),
		Royalties: royalties,
		Signature: sig,
	}, nil
}

type settlement domain.Settlement

func (s settlement) toProto() *api.Settlement {
	payouts := make([]api.Payout, 0, len(s.Payouts))
	for _, p := range s.Payouts {
		payouts = append(payouts, api.Payout{
			Kind:      string(p.Kind),
			Recipient: p.Recipient.Hex(),
			Amount:    bigIntString(p.Amount),
		})
	}
	return &api.Settlement{
		Id:            s.Id,
		Asset:         s.Asset.Hex(),
		UnitId:        s.UnitId.Hex(),
		Seller:        s.Seller.Hex(),
		Buyer:         s.Buyer.Hex(),
		Amount:        s.Amount,
		OfferedAmount: s.OfferedAmount,
		FilledAmount:  s.FilledAmount,
		PricePerUnit:  bigIntString(s.PricePerUnit),
		GrossPayment:  bigIntString(s.GrossPayment),
		Nonce:         s.Nonce,
		NonceAdvanced: s.NonceAdvanced,
		Payouts:       payouts,
		CreatedAt:     s.CreatedAt.Unix(),
	}
}

type settlementList []domain.Settlement

func (l settlementList) toProto() []*api.Settlement {
	list := make([]*api.Settlement, 0, len(l))
	for _, s := range l {
		list = append(list, settlement(s).toProto())
	}
	return list
}

type unitClass domain.UnitClass

func (u unitClass) toProto() *api.UnitClass {
	royalties := make([]api.RoyaltyFee, 0, len(u.Royalties))
	for _, r := range u.Royalties {
		royalties = append(royalties, api.RoyaltyFee{Recipient: r.Recipient.Hex(), Bps: r.Bps})
	}
	return &api.UnitClass{
		Asset:     u.Asset.Hex(),
		UnitId:    u.UnitId.Hex(),
		Creator:   u.Creator.Hex(),
		Supply:    u.Supply,
		Uri:       u.Uri,
		Royalties: royalties,
		CreatedAt: u.CreatedAt.Unix(),
	}
}

type addressList []common.Address

func (l addressList) toProto() []string {
	list := make([]string, 0, len(l))
	for _, addr := range l {
		list = append(list, addr.Hex())
	}
	return list
}

func bigIntString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
