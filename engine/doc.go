// SPDX-License-Identifier: EPL-2.0

// Package engine defines the speech recognition collaborator driven by
// package bridge.
//
// A Loader turns a model reference into a Context. A Context runs
// inference over a whole mono signal and exposes the result as ordered text
// segments, the way whisper.cpp does:
//
//	ctx, err := loader.Load("ggml-base.en.bin")
//	if err != nil {
//	    return err
//	}
//	defer ctx.Close()
//
//	if err := ctx.Run(samples, engine.DefaultOptions()); err != nil {
//	    return err
//	}
//	for i := range ctx.SegmentCount() {
//	    fmt.Print(ctx.SegmentText(i))
//	}
//
// Backends live in subpackages: engine/openai talks to any OpenAI
// compatible transcription endpoint, engine/enginetest is a recording stub
// for tests.
package engine
