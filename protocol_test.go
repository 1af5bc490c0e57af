package pagesim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRequestAssignsUniqueID(t *testing.T) {
	r1 := NewRequest(1, 0, false)
	r2 := NewRequest(1, 0, false)

	require.NotEmpty(t, r1.ID)
	require.NotEqual(t, r1.ID, r2.ID)
}

func TestRequestPageComputesIndexFromAddress(t *testing.T) {
	r := NewRequest(1, PageSize*3+7, false)
	require.Equal(t, 3, r.Page())
}

func TestRequestValidateRejectsOutOfRangeAddress(t *testing.T) {
	r := NewRequest(1, AddressSpaceSize, false)
	err := r.Validate()

	require.Error(t, err)
	fault, ok := err.(*Fault)
	require.True(t, ok)
	require.Equal(t, ErrProtocol, fault.Kind)
}

func TestRequestValidateAcceptsLastLegalAddress(t *testing.T) {
	r := NewRequest(1, AddressSpaceSize-1, false)
	require.NoError(t, r.Validate())
}

func TestNewResponseGrantsAndCorrelates(t *testing.T) {
	req := NewRequest(9, 0, false)
	resp := NewResponse(req)

	require.Equal(t, req.ID, resp.ID)
	require.Equal(t, int32(9), resp.ToPid)
	require.True(t, resp.Granted)
}
