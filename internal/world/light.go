package world

// MaxLight is the brightest block or sky light level.
const MaxLight = 15

// PackLight stores block light in the low nibble and sky light in the high nibble.
func PackLight(blockLight, skyLight uint8) uint8 {
	return (skyLight&0xF)<<4 | blockLight&0xF
}

// UnpackLight splits a packed light byte into block and sky light.
func UnpackLight(packed uint8) (blockLight, skyLight uint8) {
	return packed & 0xF, packed >> 4 & 0xF
}

// shaderLight is the vertex light value: sky*16 + block.
func shaderLight(blockLight, skyLight uint8) float32 {
	return float32(int(skyLight)*16 + int(blockLight))
}
