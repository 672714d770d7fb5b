package vm

// Instructions are 32 bits: the opcode in the top byte, a 24-bit argument
// below it.
const (
	OP_HALT      uint8 = 0x00
	OP_NOOP      uint8 = 0x01
	OP_PUSH_C    uint8 = 0x02
	OP_ADD       uint8 = 0x10
	OP_MUL       uint8 = 0x12
	OP_PRINT     uint8 = 0x15
	OP_CALL_HOST uint8 = 0x40
)

const ArgMask = 0x00FFFFFF

// Encode packs an opcode and its argument into one instruction.
func Encode(op uint8, arg uint32) uint32 {
	return (uint32(op) << 24) | (arg & ArgMask)
}

// Decode splits an instruction into opcode and argument.
func Decode(instr uint32) (uint8, uint32) {
	return uint8(instr >> 24), instr & ArgMask
}
