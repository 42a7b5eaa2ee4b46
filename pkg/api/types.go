package api

// Addresses and unit ids are 0x-prefixed hex strings, native currency
// amounts are base-10 strings, signatures are 0x-prefixed hex strings of
// 65 bytes.

type GetInfoRequest struct{}

type GetInfoResponse struct {
	Version      string `json:"version"`
	Exchange     string `json:"exchange"`
	MintSigner   string `json:"mintSigner"`
	BuyerFeeBps  uint32 `json:"buyerFeeBps"`
	SellerFeeBps uint32 `json:"sellerFeeBps"`
	FeeRecipient string `json:"feeRecipient"`
}

type QuoteOrderRequest struct {
	Asset         string `json:"asset"`
	UnitId        string `json:"unitId"`
	Owner         string `json:"owner"`
	PricePerUnit  string `json:"pricePerUnit"`
	OfferedAmount uint64 `json:"offeredAmount"`
}

type QuoteOrderResponse struct {
	Nonce       uint64 `json:"nonce"`
	Filled      uint64 `json:"filled"`
	Remaining   uint64 `json:"remaining"`
	Digest      string `json:"digest"`
	SigningHash string `json:"signingHash"`
}

type BuyRequest struct {
	Buyer         string `json:"buyer"`
	Asset         string `json:"asset"`
	UnitId        string `json:"unitId"`
	Owner         string `json:"owner"`
	OfferedAmount uint64 `json:"offeredAmount"`
	BuyingAmount  uint64 `json:"buyingAmount"`
	Signature     string `json:"signature"`
	GrossPayment  string `json:"grossPayment"`
	// BuyerSignature signs the buy authorization of the purchase, see
	// order.BuyAuthorization.
	BuyerSignature string `json:"buyerSignature"`
}

type BuyResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type Payout struct {
	Kind      string `json:"kind"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

type Settlement struct {
	Id            string   `json:"id"`
	Asset         string   `json:"asset"`
	UnitId        string   `json:"unitId"`
	Seller        string   `json:"seller"`
	Buyer         string   `json:"buyer"`
	Amount        uint64   `json:"amount"`
	OfferedAmount uint64   `json:"offeredAmount"`
	FilledAmount  uint64   `json:"filledAmount"`
	PricePerUnit  string   `json:"pricePerUnit"`
	GrossPayment  string   `json:"grossPayment"`
	Nonce         uint64   `json:"nonce"`
	NonceAdvanced bool     `json:"nonceAdvanced"`
	Payouts       []Payout `json:"payouts"`
	CreatedAt     int64    `json:"createdAt"`
}

type OrderKey struct {
	Asset  string `json:"asset"`
	UnitId string `json:"unitId"`
	Owner  string `json:"owner"`
}

type GetNonceRequest = OrderKey

type GetNonceResponse struct {
	Nonce uint64 `json:"nonce"`
}

type GetFillStateRequest = OrderKey

type GetFillStateResponse struct {
	Nonce  uint64 `json:"nonce"`
	Filled uint64 `json:"filled"`
}

type GetSettlementRequest struct {
	Id string `json:"id"`
}

type GetSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	Asset  string `json:"asset"`
	UnitId string `json:"unitId"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type RoyaltyFee struct {
	Recipient string `json:"recipient"`
	Bps       uint32 `json:"bps"`
}

type UnitClass struct {
	Asset     string       `json:"asset"`
	UnitId    string       `json:"unitId"`
	Creator   string       `json:"creator"`
	Supply    uint64       `json:"supply"`
	Uri       string       `json:"uri"`
	Royalties []RoyaltyFee `json:"royalties"`
	CreatedAt int64        `json:"createdAt"`
}

type MintRequest struct {
	Creator   string       `json:"creator"`
	Asset     string       `json:"asset"`
	UnitId    string       `json:"unitId"`
	Supply    uint64       `json:"supply"`
	Uri       string       `json:"uri"`
	Royalties []RoyaltyFee `json:"royalties"`
	Signature string       `json:"signature"`
}

type MintResponse struct {
	Unit *UnitClass `json:"unit"`
}

type GetUnitClassRequest struct {
	Asset  string `json:"asset"`
	UnitId string `json:"unitId"`
}

type GetUnitClassResponse struct {
	Unit *UnitClass `json:"unit"`
}

type SetApprovalForAllRequest struct {
	Asset     string `json:"asset"`
	Owner     string `json:"owner"`
	Operator  string `json:"operator"`
	Approved  bool   `json:"approved"`
	Signature string `json:"signature"`
}

type SetApprovalForAllResponse struct{}

type GetApprovalNonceRequest struct {
	Owner string `json:"owner"`
}

type GetApprovalNonceResponse struct {
	Nonce uint64 `json:"nonce"`
}

type GetUnitBalanceRequest = OrderKey

type GetUnitBalanceResponse struct {
	Balance uint64 `json:"balance"`
}

type GetBalanceRequest struct {
	Address string `json:"address"`
}

type GetBalanceResponse struct {
	Balance string `json:"balance"`
}

type GetFeeSettingsRequest struct{}

type GetFeeSettingsResponse struct {
	BuyerFeeBps   uint32   `json:"buyerFeeBps"`
	SellerFeeBps  uint32   `json:"sellerFeeBps"`
	FeeRecipient  string   `json:"feeRecipient"`
	Proxies       []string `json:"proxies"`
	NonceOperator string   `json:"nonceOperator"`
}

type SetRatesRequest struct {
	BuyerFeeBps  uint32 `json:"buyerFeeBps"`
	SellerFeeBps uint32 `json:"sellerFeeBps"`
}

type SetRatesResponse struct{}

type SetFeeRecipientRequest struct {
	Recipient string `json:"recipient"`
}

type SetFeeRecipientResponse struct{}

type ProxyRequest struct {
	Proxy string `json:"proxy"`
}

type ProxyResponse struct{}

type SetOperatorRequest struct {
	Operator string `json:"operator"`
}

type SetOperatorResponse struct{}

type RegisterContractRequest struct {
	Address string `json:"address"`
}

type RegisterContractResponse struct{}

type SetRejectsPaymentsRequest struct {
	Address string `json:"address"`
	Rejects bool   `json:"rejects"`
}

type SetRejectsPaymentsResponse struct{}

type DepositRequest struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

type DepositResponse struct {
	Balance string `json:"balance"`
}

// ErrorResponse is the body of a failed REST call.
type ErrorResponse struct {
	Code     int32             `json:"code"`
	Name     string            `json:"name,omitempty"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
