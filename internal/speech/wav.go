package speech

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// encodeWAV packs mono float32 samples into a 16-bit PCM RIFF container.
func encodeWAV(samples []float32, sampleRate int) []byte {
	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8
	dataSize := len(samples) * numChannels * bitsPerSample / 8

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, int32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, int32(16))
	binary.Write(buf, binary.LittleEndian, int16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, int16(numChannels))
	binary.Write(buf, binary.LittleEndian, int32(sampleRate))
	binary.Write(buf, binary.LittleEndian, int32(byteRate))
	binary.Write(buf, binary.LittleEndian, int16(blockAlign))
	binary.Write(buf, binary.LittleEndian, int16(bitsPerSample))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, int32(dataSize))

	for _, sample := range samples {
		val := sample * 32767
		if val > 32767 {
			val = 32767
		}
		if val < -32768 {
			val = -32768
		}
		binary.Write(buf, binary.LittleEndian, int16(val))
	}
	return buf.Bytes()
}

// contentKey names a rendered narration file by what produced it.
func contentKey(text string, voice Voice, params Params) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%.3f|%.3f", text, voice.Name, voice.Language, params.Rate, params.Pitch)
	return hex.EncodeToString(h.Sum(nil))[:16]
}
