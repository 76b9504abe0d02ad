package governance

import (
	"github.com/stellar/go/keypair"

	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/storage"
)

func TestMakeAddress() string {
	kp, _ := keypair.Random()
	return kp.Address()
}

// RecordingDispatcher collects emitted messages for assertions.
type RecordingDispatcher struct {
	Messages []Message
}

func (d *RecordingDispatcher) Dispatch(m Message) error {
	d.Messages = append(d.Messages, m)
	return nil
}

func TestMakeGenesis() Genesis {
	return Genesis{
		Owner:            TestMakeAddress(),
		ContractAddress:  TestMakeAddress(),
		Token:            TestMakeAddress(),
		Quorum:           "0.4",
		Threshold:        "0.5",
		VotingPeriod:     100,
		TimelockPeriod:   50,
		ExpirationPeriod: 2000,
		ProposalDeposit:  "1000",
		SnapshotPeriod:   20,
	}
}

// TestMakeGovernance wires a governance controller on in-memory storage
// with a settable balance source and a recording dispatcher.
func TestMakeGovernance(genesis Genesis) (*Governance, *StaticBalanceSource, *RecordingDispatcher) {
	st := storage.NewTestStorage()
	balances := NewStaticBalanceSource()
	dispatcher := &RecordingDispatcher{}

	g := NewGovernance(st, balances, dispatcher)
	if err := g.Instantiate(genesis); err != nil {
		panic(err)
	}

	return g, balances, dispatcher
}

// TestFundContract adds `amount` to the contract's oracle balance,
// mimicking a token transfer into custody.
func TestFundContract(balances *StaticBalanceSource, contract string, amount common.Amount) {
	current, _ := balances.Balance(contract)
	balances.SetBalance(contract, current.MustAdd(amount))
}

// TestStake funds the contract and issues shares for the staker.
func TestStake(g *Governance, balances *StaticBalanceSource, genesis Genesis, staker string, amount common.Amount) error {
	TestFundContract(balances, genesis.ContractAddress, amount)
	return g.StakeTokens(genesis.Token, staker, amount)
}

// TestCreatePoll funds the deposit and creates a poll with default
// metadata.
func TestCreatePoll(g *Governance, balances *StaticBalanceSource, genesis Genesis, proposer string, deposit common.Amount, executeData []ExecuteData, height uint64) (uint64, error) {
	TestFundContract(balances, genesis.ContractAddress, deposit)
	return g.CreatePoll(genesis.Token, proposer, deposit, "test", "a test poll", "", executeData, height)
}
