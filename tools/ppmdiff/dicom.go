package main

import (
	"fmt"
	"math"

	"github.com/cocosip/go-dicom/pkg/dicom/element"
	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/dicom/tag"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	codecHelpers "github.com/cocosip/go-rpeg-codec/codec"
	rpegdicom "github.com/cocosip/go-rpeg-codec/rpeg/dicom"
)

// frameReport is the round-trip result for one DICOM frame.
type frameReport struct {
	Index      int
	RawBytes   int
	CodedBytes int
	RMS        float64
}

// readNativeFrames loads the RGB frames of an uncompressed DICOM file.
func readNativeFrames(path string) (*codecHelpers.TestPixelData, error) {
	result, err := parser.ParseFile(path,
		parser.WithReadOption(parser.ReadAll),
		parser.WithLargeObjectSize(100*1024*1024),
	)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	ds := result.Dataset
	if result.TransferSyntax.IsEncapsulated() {
		return nil, fmt.Errorf("%s: compressed transfer syntax %s, need native pixel data",
			path, result.TransferSyntax.UID().UID())
	}

	frameInfo := &imagetypes.FrameInfo{
		Width:                     ds.TryGetUInt16(tag.Columns, 0),
		Height:                    ds.TryGetUInt16(tag.Rows, 0),
		BitsAllocated:             ds.TryGetUInt16(tag.BitsAllocated, 8),
		BitsStored:                ds.TryGetUInt16(tag.BitsStored, 8),
		SamplesPerPixel:           ds.TryGetUInt16(tag.SamplesPerPixel, 1),
		PixelRepresentation:       ds.TryGetUInt16(tag.PixelRepresentation, 0),
		PlanarConfiguration:       ds.TryGetUInt16(tag.PlanarConfiguration, 0),
		PhotometricInterpretation: "RGB",
	}
	frameInfo.HighBit = frameInfo.BitsStored - 1

	pd, ok := ds.Get(tag.PixelData)
	if !ok {
		return nil, fmt.Errorf("no pixel data")
	}
	var pixelData []byte
	switch v := pd.(type) {
	case *element.OtherByte:
		pixelData = v.GetData()
	case *element.OtherWord:
		pixelData = v.GetData()
	default:
		return nil, fmt.Errorf("unexpected pixel data type: %T", pd)
	}

	frameSize := int(frameInfo.Width) * int(frameInfo.Height) *
		int(frameInfo.SamplesPerPixel) * int(frameInfo.BitsAllocated/8)
	if frameSize == 0 || len(pixelData) < frameSize {
		return nil, fmt.Errorf("pixel data holds %d bytes, frame needs %d", len(pixelData), frameSize)
	}

	frames := codecHelpers.NewTestPixelData(frameInfo)
	for off := 0; off+frameSize <= len(pixelData); off += frameSize {
		if err := frames.AddFrame(pixelData[off : off+frameSize]); err != nil {
			return nil, err
		}
	}
	return frames, nil
}

// roundTripFrames compresses and decompresses every frame with rpeg and
// measures the normalized RMS error of each.
func roundTripFrames(src *codecHelpers.TestPixelData, chroma string) ([]frameReport, error) {
	frameInfo := src.GetFrameInfo()
	c := rpegdicom.NewCodec()
	params := rpegdicom.NewRpegParameters().WithChroma(chroma)

	encoded := codecHelpers.NewTestPixelData(frameInfo)
	if err := c.Encode(src, encoded, params); err != nil {
		return nil, err
	}
	decoded := codecHelpers.NewTestPixelData(frameInfo)
	if err := c.Decode(encoded, decoded, params); err != nil {
		return nil, err
	}

	bytesPerSample := int(frameInfo.BitsAllocated / 8)
	scale := float64(uint32(1)<<frameInfo.BitsStored - 1)
	reports := make([]frameReport, 0, src.FrameCount())
	for i := 0; i < src.FrameCount(); i++ {
		orig, _ := src.GetFrame(i)
		coded, _ := encoded.GetFrame(i)
		got, _ := decoded.GetFrame(i)

		sum := 0.0
		n := len(orig) / bytesPerSample
		for s := 0; s < n; s++ {
			d := (frameSample(orig, s, bytesPerSample) - frameSample(got, s, bytesPerSample)) / scale
			sum += d * d
		}
		reports = append(reports, frameReport{
			Index:      i,
			RawBytes:   len(orig),
			CodedBytes: len(coded),
			RMS:        math.Sqrt(sum / float64(n)),
		})
	}
	return reports, nil
}

func frameSample(frame []byte, i, bytesPerSample int) float64 {
	if bytesPerSample == 1 {
		return float64(frame[i])
	}
	return float64(uint16(frame[2*i]) | uint16(frame[2*i+1])<<8)
}
