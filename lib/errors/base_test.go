package errors

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	require.Equal(t, ErrorPollNotFound, ErrorPollNotFound)

	e := ErrorPollNotFound
	e0 := ErrorPollNotFound.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	{
		e0.SetData("poll_id", uint64(33))
		require.NotEqual(t, e.Data, e0.Data)
	}
}

func TestErrorsRLP(t *testing.T) {
	{
		_, err := rlp.EncodeToBytes(ErrorInsufficientProposalDeposit)
		require.Nil(t, err)
	}

	{ // with `SetData()`, the rlp encoded value must be different
		encoded, err := rlp.EncodeToBytes(ErrorInsufficientProposalDeposit)
		require.Nil(t, err)

		e := ErrorInsufficientProposalDeposit.Clone()
		e.SetData("required", "1000000")
		encoded0, err := rlp.EncodeToBytes(e)
		require.Nil(t, err)
		require.NotEqual(t, encoded, encoded0)
	}
}
