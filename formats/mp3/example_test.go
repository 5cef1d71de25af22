// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ik5/wavbridge"
	"github.com/ik5/wavbridge/audio"
	"github.com/ik5/wavbridge/formats/mp3"
)

// ExampleDecoder_Decode decodes an MP3 into a mono signal and boosts it when
// it is quiet, the same pass the transcription bridge applies.
func ExampleDecoder_Decode() {
	f, err := os.Open("voicemail.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	sig, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	samples := audio.ApplyHooks(sig.Data, audio.AutoGain)
	length := time.Duration(len(samples)) * time.Second / time.Duration(sig.Format.SampleRate)

	fmt.Printf("channels=%d rate=%d length=%s\n", sig.Format.NumChannels, sig.Format.SampleRate, length)
}

// ExampleDecoder_Decode_invalid shows the error class of an unreadable stream.
func ExampleDecoder_Decode_invalid() {
	_, err := mp3.Decoder{}.Decode(bytes.NewReader([]byte("plain text, no audio here")))

	fmt.Println(errors.Is(err, mp3.ErrNotMP3File))
	fmt.Println(audio.Class(err) == audio.ErrContainer)
	fmt.Println(audio.Message(err))
	// Output:
	// true
	// true
	// Not an MP3 stream
}

// Example_wavNamedMP3 shows that RIFF/WAVE content is read as WAV even
// behind an .mp3 name.
func Example_wavNamedMP3() {
	wavBytes := []byte{
		'R', 'I', 'F', 'F', 38, 0, 0, 0, 'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ', 16, 0, 0, 0,
		1, 0, 1, 0, 0x40, 0x1f, 0, 0, 0x80, 0x3e, 0, 0, 2, 0, 16, 0,
		'd', 'a', 't', 'a', 2, 0, 0, 0, 0, 0x40,
	}

	sig, err := wavbridge.Decode(nil, "greeting.mp3", bytes.NewReader(wavBytes))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(sig.Format.SampleRate, sig.Data[0])
	// Output: 8000 0.5
}
