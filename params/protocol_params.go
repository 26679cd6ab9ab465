// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package params holds every gas cost, refund quotient, and protocol size
// limit the interpreter consults, namespaced by the EIP that introduced it.
package params

const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20

	TxGas                 uint64 = 21000 // Per transaction not creating a contract.
	TxGasContractCreation uint64 = 53000 // Per transaction that creates a contract.
	TxDataZeroGas         uint64 = 4     // Per zero byte of calldata.
	TxDataNonZeroGasEIP2028 uint64 = 16  // Per non-zero byte of calldata after EIP-2028.

	TxAccessListAddressGas    uint64 = 2400 // Per address in an EIP-2930 access list.
	TxAccessListStorageKeyGas uint64 = 1900 // Per storage key in an EIP-2930 access list.

	QuadCoeffDiv uint64 = 512 // Divisor for the quadratic memory-expansion term.
	MemoryGas    uint64 = 3   // Linear coefficient of memory expansion.

	Keccak256Gas     uint64 = 30 // Once per KECCAK256 call.
	Keccak256WordGas uint64 = 6  // Per word of KECCAK256 input.

	SstoreSentryGasEIP2200            uint64 = 2300  // Minimum gas that must remain for SSTORE to proceed.
	SstoreSetGasEIP2200               uint64 = 20000 // Clean zero -> non-zero.
	SstoreResetGasEIP2200             uint64 = 5000  // Clean non-zero -> something else.
	SstoreClearsScheduleRefundEIP2200 uint64 = 15000 // Clearing an originally-nonzero slot (pre-3529).

	ColdAccountAccessCostEIP2929 uint64 = 2600 // COLD_ACCOUNT_ACCESS_COST
	ColdSloadCostEIP2929         uint64 = 2100 // COLD_SLOAD_COST
	WarmStorageReadCostEIP2929   uint64 = 100  // WARM_STORAGE_READ_COST

	// SstoreClearsScheduleRefundEIP3529 = SstoreResetGasEIP2200 - ColdSloadCostEIP2929 + TxAccessListStorageKeyGas
	// = 5000 - 2100 + 1900 = 4800
	SstoreClearsScheduleRefundEIP3529 uint64 = SstoreResetGasEIP2200 - ColdSloadCostEIP2929 + TxAccessListStorageKeyGas

	RefundQuotientEIP3529 uint64 = 5 // Post-EIP-3529 refund cap divisor (gas_used / 5).

	JumpdestGas uint64 = 1 // Once per JUMPDEST.

	CreateGas             uint64 = 32000 // Once per CREATE.
	Create2Gas            uint64 = 32000 // Once per CREATE2 (plus the salt-hash word cost).
	CreateDataGas         uint64 = 200   // Per byte of deployed code.
	InitCodeWordGas       uint64 = 2     // Per word of init code (EIP-3860).
	MaxCodeSize                  = 24576 // EIP-170 deployed code size cap.
	MaxInitCodeSize              = 2 * MaxCodeSize // EIP-3860 init code size cap.

	CallGasFrontier   uint64 = 40    // Base CALL/CALLCODE cost before EIP-150 repriced it.
	CallStipend       uint64 = 2300  // Stipend forwarded to a callee when value is transferred.
	CallValueTransferGas uint64 = 9000  // Paid when a CALL transfers non-zero value.
	CallNewAccountGas uint64 = 25000 // Paid when a CALL's target account did not previously exist.
	CallCreateDepth   uint64 = 1024  // Maximum call/create nesting depth.

	LogGas      uint64 = 375 // Per LOG* operation.
	LogDataGas  uint64 = 8   // Per byte of LOG* data.
	LogTopicGas uint64 = 375 // Per topic of a LOG* operation.

	SelfdestructRefundGas uint64 = 24000 // Pre-EIP-3529 selfdestruct refund (dead post-London; nothing references it).

	ExpByteFrontier uint64 = 10 // Per byte of EXP exponent, pre-Spurious-Dragon.
	ExpByteEIP158   uint64 = 50 // Per byte of EXP exponent, Spurious-Dragon onward.

	// Precompiled contract gas prices.
	EcrecoverGas        uint64 = 3000
	Sha256BaseGas       uint64 = 60
	Sha256PerWordGas    uint64 = 12
	Ripemd160BaseGas    uint64 = 600
	Ripemd160PerWordGas uint64 = 120
	IdentityBaseGas     uint64 = 15
	IdentityPerWordGas  uint64 = 3

	Bn256AddGasByzantium             uint64 = 500
	Bn256AddGasIstanbul              uint64 = 150
	Bn256ScalarMulGasByzantium       uint64 = 40000
	Bn256ScalarMulGasIstanbul        uint64 = 6000
	Bn256PairingBaseGasByzantium     uint64 = 100000
	Bn256PairingBaseGasIstanbul      uint64 = 45000
	Bn256PairingPerPointGasByzantium uint64 = 80000
	Bn256PairingPerPointGasIstanbul  uint64 = 34000

	BlobTxPointEvaluationPrecompileGas uint64 = 50000

	// StackLimit is the maximum number of u256 words the evaluation stack holds.
	StackLimit = 1024

	// EIP-150 ("Tangerine Whistle") account/storage-touch repricing.
	BalanceGasEIP150      uint64 = 400
	ExtcodeSizeGasEIP150  uint64 = 700
	ExtcodeCopyBaseEIP150 uint64 = 700
	SloadGasEIP150        uint64 = 200
	CallGasEIP150         uint64 = 700

	// EIP-1884 ("Istanbul") repricing of state-touching opcodes.
	SloadGasEIP1884        uint64 = 800
	BalanceGasEIP1884      uint64 = 700
	ExtcodeHashGasConstantinople uint64 = 400
	ExtcodeHashGasEIP1884        uint64 = 700
)
