package api

func (x *BuyRequest) GetBuyer() string {
	if x != nil {
		return x.Buyer
	}
	return ""
}

func (x *BuyRequest) GetAsset() string {
	if x != nil {
		return x.Asset
	}
	return ""
}

func (x *BuyRequest) GetUnitId() string {
	if x != nil {
		return x.UnitId
	}
	return ""
}

func (x *BuyRequest) GetOwner() string {
	if x != nil {
		return x.Owner
	}
	return ""
}

func (x *BuyRequest) GetOfferedAmount() uint64 {
	if x != nil {
		return x.OfferedAmount
	}
	return 0
}

func (x *BuyRequest) GetBuyingAmount() uint64 {
	if x != nil {
		return x.BuyingAmount
	}
	return 0
}

func (x *BuyRequest) GetSignature() string {
	if x != nil {
		return x.Signature
	}
	return ""
}

func (x *BuyRequest) GetGrossPayment() string {
	if x != nil {
		return x.GrossPayment
	}
	return ""
}

func (x *BuyRequest) GetBuyerSignature() string {
	if x != nil {
		return x.BuyerSignature
	}
	return ""
}

func (x *MintRequest) GetCreator() string {
	if x != nil {
		return x.Creator
	}
	return ""
}

func (x *MintRequest) GetAsset() string {
	if x != nil {
		return x.Asset
	}
	return ""
}

func (x *MintRequest) GetUnitId() string {
	if x != nil {
		return x.UnitId
	}
	return ""
}

func (x *MintRequest) GetSupply() uint64 {
	if x != nil {
		return x.Supply
	}
	return 0
}

func (x *MintRequest) GetUri() string {
	if x != nil {
		return x.Uri
	}
	return ""
}

func (x *MintRequest) GetRoyalties() []RoyaltyFee {
	if x != nil {
		return x.Royalties
	}
	return nil
}

func (x *MintRequest) GetSignature() string {
	if x != nil {
		return x.Signature
	}
	return ""
}
