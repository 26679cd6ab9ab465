// (c) 2024, adapted for this module, grounded on the teacher's
// plugin/evm/vm.go role as "the thing that wires the core package into
// a running process," reduced to a single-file example per spec.md's
// "no CLI, no wire protocol at this layer." See the file LICENSE for
// licensing terms.

// Command evmrun is a local-experimentation harness, not a JSON-RPC
// node: it deploys one contract, calls it once, and prints the result.
// It exists so the ambient stack - structured logging, metrics
// registration - has somewhere to be exercised as a program rather than
// only as library code.
package main

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/holoevm/evmcore/core/state"
	"github.com/holoevm/evmcore/core/vm"
	"github.com/holoevm/evmcore/internal/logging"
	"github.com/holoevm/evmcore/params"
)

func main() {
	logging.Setup(logging.DefaultConfig())

	st := state.NewMemoryState()

	deployer := common.HexToAddress("0x00000000000000000000000000000000000001")
	st.SetAccount(deployer, state.Account{Balance: uint256.NewInt(1_000_000_000_000_000_000)})

	chainConfig := params.MainnetChainConfig()
	rules := chainConfig.Rules(big.NewInt(20_000_000), true, 1_710_000_000)

	blockCtx := vm.BlockContext{
		Coinbase:    common.HexToAddress("0xc0ffee00000000000000000000000000000000"),
		GasLimit:    30_000_000,
		BlockNumber: big.NewInt(20_000_000),
		Time:        big.NewInt(1_710_000_000),
		BaseFee:     big.NewInt(1_000_000_000),
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
	}
	exec := vm.NewExecutor(st, chainConfig)

	// A trivial runtime program: PUSH1 0x2a, PUSH1 0x00, MSTORE,
	// PUSH1 0x20, PUSH1 0x00, RETURN - returns the 32-byte value 42.
	initCode := []byte{
		0x60, 0x2a, // PUSH1 0x2a
		0x60, 0x00, // PUSH1 0x00
		0x52,       // MSTORE
		0x60, 0x20, // PUSH1 0x20
		0x60, 0x00, // PUSH1 0x00
		0xf3, // RETURN
	}
	// Wrap as init code that deploys the above as runtime code: copy the
	// trailing bytes into memory and RETURN them.
	deployCode := append([]byte{
		0x60, byte(len(initCode)), // PUSH1 <len>
		0x60, 0x0c, // PUSH1 <offset of runtime code below: 12-byte header>
		0x60, 0x00, // PUSH1 0x00
		0x39,       // CODECOPY
		0x60, byte(len(initCode)), // PUSH1 <len>
		0x60, 0x00, // PUSH1 0x00
		0xf3, // RETURN
	}, initCode...)

	ctx := context.Background()

	deployResult, err := exec.Execute(ctx, vm.TxCall{
		Kind:     vm.CallKindCreate,
		From:     deployer,
		Value:    new(uint256.Int),
		Input:    deployCode,
		GasLimit: 500_000,
		GasPrice: big.NewInt(1_000_000_000),
	}, blockCtx, rules)
	st.EndTransaction(rules.IsCancun)
	if err != nil || !deployResult.Success {
		log.Error("deploy failed", "err", err, "resultErr", deployResult.Err)
		os.Exit(1)
	}
	addr := deployResult.CreatedAddress
	log.Info("deployed", "address", addr, "gasUsed", deployResult.GasUsed)

	callResult, err := exec.Execute(ctx, vm.TxCall{
		Kind:     vm.CallKindCall,
		From:     deployer,
		To:       addr,
		Value:    new(uint256.Int),
		GasLimit: 100_000,
		GasPrice: big.NewInt(1_000_000_000),
	}, blockCtx, rules)
	st.EndTransaction(rules.IsCancun)
	if err != nil || !callResult.Success {
		log.Error("call failed", "err", err, "resultErr", callResult.Err)
		os.Exit(1)
	}
	fmt.Printf("returned %x (gas used %d)\n", callResult.ReturnData, callResult.GasUsed)
}
