// Package blob encodes a param.Store into the AGXB binary layout and decodes AGXB
// streams with a forward-only reader.
//
// # Core Types
//
// **Encoder**: serializes a Store
//   - Encode writes the whole layout to an io.Writer
//   - WriteFile writes it to a file, Bytes returns it in memory
//
// **Decoder**: walks an AGXB stream
//   - Header and Subtype are decoded when the decoder is created
//   - NextConstant walks the constants region
//   - BeginNextTimeStep and NextTimeStepParam walk the time step blocks
//
// **ParamView**: one decoded record, borrowed from the decoder
//
// # Encoding Workflow
//
//	store, _ := param.NewStore()
//	store.SetParameter("bbox.min", format.TypeFloat32Vec3, param.PackFloat32(0, 0, 0))
//	store.SetTimeStepCount(4)
//	for i := range uint32(4) {
//	    store.SetTimeStepParameter(i, "time", format.TypeFloat32, param.PackFloat32(float32(i)))
//	}
//
//	encoder, err := blob.NewEncoder(store)
//	if err != nil {
//	    return err
//	}
//	err = encoder.WriteFile("scene.agxb")
//
// # Decoding Workflow
//
//	decoder, err := blob.OpenFile("scene.agxb")
//	if err != nil {
//	    return err
//	}
//	defer decoder.Close()
//
//	var view blob.ParamView
//	for {
//	    ok, err := decoder.NextConstant(&view)
//	    if err != nil {
//	        return err
//	    }
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(view.NameString(), len(view.Data))
//	}
//
//	for {
//	    step, ok, err := decoder.BeginNextTimeStep()
//	    if err != nil || !ok {
//	        break
//	    }
//	    for ok, err := decoder.NextTimeStepParam(&view); ok && err == nil; ok, err = decoder.NextTimeStepParam(&view) {
//	        fmt.Println(step.Index, view.NameString())
//	    }
//	}
//
// # View Lifetime
//
// The decoder owns a single buffer that holds the name and payload of the most recent
// record. ParamView.Name and ParamView.Data point into it and are overwritten by the
// next Next* call and invalidated by Reset* and Close. Copy what you need to keep,
// for example with ParamView.Value or ReadStore.
//
// # Byte Order
//
// Integers are written in host byte order unless WithLittleEndian or WithBigEndian is
// given. The decoder detects the writer's order from the header marker and normalizes
// every header and record integer. Payload bytes are returned as written.
//
// # Error Handling
//
// The decoder's Next* methods return (ok, err): ok reports that a record was produced,
// ok=false with a nil error marks the end of a region. The first format or I/O error
// moves the decoder into StateError; every later call returns errs.ErrReaderFailed.
// Status converts a result to the 1/0/-1 convention used by the inspection tooling.
//
// # Thread Safety
//
// Encoders and decoders are not safe for concurrent use.
package blob
