package errors

import (
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errorInfoDomain marks ErrorInfo details written by ToGRPCError
const errorInfoDomain = "rpg-inventory"

// grpcCodes maps every Code onto the closest gRPC code. Full and
// Inconsistent have no exact match, so ToGRPCError also sends the Code
// itself in an ErrorInfo detail.
var grpcCodes = map[Code]codes.Code{
	CodeOK:              codes.OK,
	CodeInvalidArgument: codes.InvalidArgument,
	CodeNotFound:        codes.NotFound,
	CodeAlreadyExists:   codes.AlreadyExists,
	CodeCanceled:        codes.Canceled,
	CodeFull:            codes.ResourceExhausted,
	CodeInconsistent:    codes.Internal,
	CodeInternal:        codes.Internal,
	CodeUnavailable:     codes.Unavailable,
	CodeDataLoss:        codes.DataLoss,
}

// fromGRPCCodes is the reverse of grpcCodes, preferring CodeInternal for
// codes.Internal
var fromGRPCCodes = func() map[codes.Code]Code {
	m := make(map[codes.Code]Code, len(grpcCodes))
	for code, g := range grpcCodes {
		if code == CodeInconsistent {
			continue
		}
		m[g] = code
	}
	return m
}()

// GRPCCode returns the gRPC code for c, codes.Unknown for unknown codes
func (c Code) GRPCCode() codes.Code {
	if g, ok := grpcCodes[c]; ok {
		return g
	}
	return codes.Unknown
}

// ToGRPCError converts err to a gRPC status error for services that embed an
// inventory. Status errors pass through unchanged.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if !As(err, &e) {
		return status.Error(codes.Internal, err.Error())
	}

	info := &errdetails.ErrorInfo{
		Reason: string(e.Code),
		Domain: errorInfoDomain,
	}
	if len(e.Meta) > 0 {
		info.Metadata = make(map[string]string, len(e.Meta))
		for k, v := range e.Meta {
			info.Metadata[k] = fmt.Sprint(v)
		}
	}

	st := status.New(e.Code.GRPCCode(), e.Message)
	detailed, detailErr := st.WithDetails(info)
	if detailErr != nil {
		return st.Err()
	}
	return detailed.Err()
}

// FromGRPCError turns a gRPC status error back into an *Error. The Code and
// metadata sent by ToGRPCError are restored; other errors pass through.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	code, known := fromGRPCCodes[st.Code()]
	if !known {
		code = CodeInternal
	}
	e := New(code, st.Message())

	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != errorInfoDomain {
			continue
		}
		if reason := Code(info.GetReason()); reason != "" {
			e.Code = reason
		}
		for k, v := range info.GetMetadata() {
			e.WithMeta(k, v)
		}
		break
	}
	return e
}

// GRPCStatus returns the status err would be reported with
func GRPCStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	if st, ok := status.FromError(err); ok {
		return st
	}
	return status.New(GetCode(err).GRPCCode(), GetMessage(err))
}
