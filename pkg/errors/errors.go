package errors

import (
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	grpccodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errorDomain = "offerd"

// Code is the type representing a namespace error code.
type Code[MT any] struct {
	Code     uint16
	Name     string
	GrpcCode grpccodes.Code
}

// New creates a new error with the given code and the message
func (c Code[MT]) New(msg string, args ...any) TypedError[MT] {
	return &ErrorImpl[MT]{
		code:  c,
		cause: fmt.Errorf(msg, args...),
	}
}

// Wrap creates a new Error with the given code and the cause error
func (c Code[MT]) Wrap(cause error) TypedError[MT] {
	return &ErrorImpl[MT]{
		code:  c,
		cause: cause,
	}
}

// Is returns whether err, or any error it wraps, carries this code.
func (c Code[MT]) Is(err error) bool {
	var structuredErr Error
	if !errors.As(err, &structuredErr) {
		return false
	}
	return structuredErr.Code() == c.Code && structuredErr.CodeName() == c.Name
}

func (c Code[MT]) String() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.Code)
}

type Error interface {
	error
	Log() *log.Entry
	Code() uint16
	CodeName() string
	GrpcCode() grpccodes.Code
	Metadata() map[string]string
	GRPCStatus() *status.Status
}

type TypedError[MT any] interface {
	Error
	WithMetadata(MT) TypedError[MT]
}

// ErrorImpl is the default concrete implementation of TypedError.
type ErrorImpl[MT any] struct {
	code     Code[MT]
	cause    error
	metadata MT
}

func (e *ErrorImpl[MT]) Log() *log.Entry {
	return log.WithField("name", e.code.Name).
		WithField("code", e.code.Code).
		WithField("metadata", e.metadata)
}

func (e *ErrorImpl[MT]) Metadata() map[string]string {
	// convert any metadata to map[string]string
	metadata := make(map[string]string)
	buf, err := json.Marshal(e.metadata)
	if err == nil {
		var genericMap map[string]any
		if err := json.Unmarshal(buf, &genericMap); err == nil {
			for k, v := range genericMap {
				vStr := ""
				if v != nil {
					vStr = fmt.Sprintf("%v", v)
				}
				metadata[k] = vStr
			}
		}
	}
	return metadata
}

func (e *ErrorImpl[MT]) GrpcCode() grpccodes.Code {
	return e.code.GrpcCode
}

func (e *ErrorImpl[MT]) Code() uint16 {
	return e.code.Code
}

func (e *ErrorImpl[MT]) CodeName() string {
	return e.code.Name
}

// GRPCStatus lets grpc status.Convert/FromError map the error to its grpc code,
// attaching the code name and metadata as an ErrorInfo detail.
func (e *ErrorImpl[MT]) GRPCStatus() *status.Status {
	st := status.New(e.code.GrpcCode, e.Error())
	stWithDetails, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   e.code.Name,
		Domain:   errorDomain,
		Metadata: e.Metadata(),
	})
	if err != nil {
		return st
	}
	return stWithDetails
}

// Error() implements the error interface.
func (e *ErrorImpl[MT]) Error() string {
	return fmt.Sprintf("%s: %s", e.code.String(), e.cause.Error())
}

func (e *ErrorImpl[MT]) Unwrap() error {
	return e.cause
}

func (e *ErrorImpl[MT]) WithMetadata(metadata MT) TypedError[MT] {
	e.metadata = metadata
	return e
}

type OrderMetadata struct {
	Asset         string `json:"asset"`
	UnitId        string `json:"unit_id"`
	Owner         string `json:"owner"`
	OfferedAmount uint64 `json:"offered_amount"`
	BuyingAmount  uint64 `json:"buying_amount"`
	Nonce         uint64 `json:"nonce"`
	Buyer         string `json:"buyer,omitempty"`
}

type ApprovalMetadata struct {
	Asset    string `json:"asset"`
	Owner    string `json:"owner"`
	Operator string `json:"operator"`
	Nonce    uint64 `json:"nonce"`
}

type TransferMetadata struct {
	Asset    string `json:"asset"`
	UnitId   string `json:"unit_id"`
	From     string `json:"from"`
	Operator string `json:"operator"`
	Amount   uint64 `json:"amount"`
	Balance  uint64 `json:"balance"`
}

type CallerMetadata struct {
	Caller   string `json:"caller"`
	Required string `json:"required"`
}

type AddressMetadata struct {
	Address string `json:"address"`
}

type PaymentMetadata struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

type FundsMetadata struct {
	Account  string `json:"account"`
	Balance  string `json:"balance"`
	Required string `json:"required"`
}

type FeeRateMetadata struct {
	Bps uint32 `json:"bps"`
}

type UnitMetadata struct {
	Asset  string `json:"asset"`
	UnitId string `json:"unit_id"`
}

var INTERNAL_ERROR = Code[map[string]any]{0, "INTERNAL_ERROR", grpccodes.Internal}

var INCORRECT_SIGNATURE = Code[OrderMetadata]{
	1,
	"INCORRECT_SIGNATURE",
	grpccodes.InvalidArgument,
}

var NOT_OWNER_OR_APPROVED = Code[TransferMetadata]{
	2,
	"NOT_OWNER_OR_APPROVED",
	grpccodes.PermissionDenied,
}

var INSUFFICIENT_BALANCE = Code[TransferMetadata]{
	3,
	"INSUFFICIENT_BALANCE",
	grpccodes.FailedPrecondition,
}
var UNAUTHORIZED = Code[CallerMetadata]{4, "UNAUTHORIZED", grpccodes.PermissionDenied}
var NOT_A_CONTRACT = Code[AddressMetadata]{5, "NOT_A_CONTRACT", grpccodes.InvalidArgument}
var PAYMENT_REJECTED = Code[PaymentMetadata]{6, "PAYMENT_REJECTED", grpccodes.FailedPrecondition}
var INSUFFICIENT_FUNDS = Code[FundsMetadata]{7, "INSUFFICIENT_FUNDS", grpccodes.FailedPrecondition}
var INVALID_FEE_RATE = Code[FeeRateMetadata]{8, "INVALID_FEE_RATE", grpccodes.InvalidArgument}
var UNIT_ALREADY_EXISTS = Code[UnitMetadata]{9, "UNIT_ALREADY_EXISTS", grpccodes.AlreadyExists}

var INVALID_MINT_SIGNATURE = Code[UnitMetadata]{
	10,
	"INVALID_MINT_SIGNATURE",
	grpccodes.InvalidArgument,
}
var NOT_FOUND = Code[map[string]any]{11, "NOT_FOUND", grpccodes.NotFound}
var INVALID_ARGUMENT = Code[map[string]any]{12, "INVALID_ARGUMENT", grpccodes.InvalidArgument}

var INVALID_APPROVAL_SIGNATURE = Code[ApprovalMetadata]{
	13,
	"INVALID_APPROVAL_SIGNATURE",
	grpccodes.PermissionDenied,
}
