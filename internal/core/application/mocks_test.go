package application_test

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
)

type mockedVerifier struct {
	mock.Mock
}

func (m *mockedVerifier) Recover(hash common.Hash, sig []byte) (common.Address, error) {
	args := m.Called(hash, sig)
	var res common.Address
	if a := args.Get(0); a != nil {
		res = a.(common.Address)
	}
	return res, args.Error(1)
}
