package world

import "encoding/binary"

// DrawCommand is one indirect draw record. Field order and width match the
// GL DrawElementsIndirectCommand layout.
type DrawCommand struct {
	Count         uint32
	InstanceCount uint32
	FirstIndex    uint32
	BaseVertex    uint32
	BaseInstance  uint32
}

// DrawCommandSize is the encoded size of a DrawCommand in bytes.
const DrawCommandSize = 20

// EncodeCommands serialises commands as little-endian uint32 records.
func EncodeCommands(cmds []DrawCommand) []byte {
	buf := make([]byte, len(cmds)*DrawCommandSize)
	for i, cmd := range cmds {
		b := buf[i*DrawCommandSize:]
		binary.LittleEndian.PutUint32(b[0:], cmd.Count)
		binary.LittleEndian.PutUint32(b[4:], cmd.InstanceCount)
		binary.LittleEndian.PutUint32(b[8:], cmd.FirstIndex)
		binary.LittleEndian.PutUint32(b[12:], cmd.BaseVertex)
		binary.LittleEndian.PutUint32(b[16:], cmd.BaseInstance)
	}
	return buf
}

// Batch holds a chunk's multidraw arguments. IndexCounts, BaseVertices and
// DrawCount describe the opaque subchunk draws. Commands is only filled in
// indirect mode and ends with the translucent command.
type Batch struct {
	IndexCounts  []int32
	BaseVertices []int32
	DrawCount    int
	Commands     []DrawCommand
}

func (b *Batch) reset() {
	b.IndexCounts = b.IndexCounts[:0]
	b.BaseVertices = b.BaseVertices[:0]
	b.DrawCount = 0
	b.Commands = b.Commands[:0]
}

// TranslucentCommandOffset is the byte offset of the translucent command in
// the indirect buffer.
func (b *Batch) TranslucentCommandOffset() int {
	return b.DrawCount * DrawCommandSize
}
