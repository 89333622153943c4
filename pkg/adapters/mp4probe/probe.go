// Package mp4probe reads frame count, frame rate and codec from MP4 sample
// tables without decoding any sample.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framestep/pkg/media"
)

// Codec represents a video codec type.
type Codec string

const (
	CodecH264    Codec = "h264"
	CodecHEVC    Codec = "hevc"
	CodecAV1     Codec = "av1"
	CodecVP9     Codec = "vp9"
	CodecUnknown Codec = "unknown"
)

var (
	// ErrNoVideoTrack is returned when the file has no video track.
	ErrNoVideoTrack = errors.New("mp4probe: no video track found")
	// ErrNoSampleTable is returned when the video track lacks the tables needed to count samples.
	ErrNoSampleTable = errors.New("mp4probe: no sample table found")
)

// ProbeFile reads the container metadata of an MP4 file.
func ProbeFile(path string) (media.Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return media.Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Probe(f)
}

// Probe reads the container metadata from an io.ReadSeeker.
func Probe(reader io.ReadSeeker) (media.Info, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return media.Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	// Reset reader position for subsequent reads
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return media.Info{}, fmt.Errorf("seek: %w", err)
	}

	return probeMP4File(mp4File)
}

func probeMP4File(mp4File *mp4.File) (media.Info, error) {
	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return media.Info{}, ErrNoVideoTrack
	}

	trak := videoTrack(moov)
	if trak == nil {
		return media.Info{}, ErrNoVideoTrack
	}

	info := media.Info{Codec: string(CodecUnknown)}
	var timescale uint32 = 1000
	if trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale > 0 {
		timescale = trak.Mdia.Mdhd.Timescale
	}

	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsd != nil {
		for _, child := range stbl.Stsd.Children {
			codec := codecFromType(child.Type())
			if codec == CodecUnknown {
				continue
			}
			info.Codec = string(codec)
			if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
				info.Width = int(vse.Width)
				info.Height = int(vse.Height)
			}
			break
		}
	}

	var firstDur uint32
	if mp4File.IsFragmented() {
		count, dur, err := countFragmentSamples(mp4File, moov, trak.Tkhd.TrackID)
		if err != nil {
			return media.Info{}, err
		}
		info.FrameCount = count
		firstDur = dur
	}

	// Progressive files and fragmented files with samples in moov both
	// carry an stsz table.
	if info.FrameCount == 0 && stbl.Stsz != nil && stbl.Stsz.SampleNumber > 0 {
		info.FrameCount = int(stbl.Stsz.SampleNumber)
		if stbl.Stts != nil {
			_, firstDur = stbl.Stts.GetDecodeTime(1)
		}
	}

	if info.FrameCount == 0 && !mp4File.IsFragmented() && stbl.Stsz == nil {
		return media.Info{}, ErrNoSampleTable
	}

	if firstDur > 0 {
		info.NominalRate = float64(timescale) / float64(firstDur)
	}
	return info, nil
}

func videoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
			continue
		}
		// Only process video tracks
		if trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
			continue
		}
		return trak
	}
	return nil
}

func countFragmentSamples(mp4File *mp4.File, moov *mp4.MoovBox, trackID uint32) (int, uint32, error) {
	var trex *mp4.TrexBox
	if moov.Mvex != nil {
		for _, t := range moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	count := 0
	var firstDur uint32
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			samples, err := frag.GetFullSamples(trex)
			if err != nil {
				return 0, 0, fmt.Errorf("get samples: %w", err)
			}
			if count == 0 && len(samples) > 0 {
				firstDur = samples[0].Dur
			}
			count += len(samples)
		}
	}
	return count, firstDur, nil
}

func codecFromType(boxType string) Codec {
	switch boxType {
	case "avc1", "avc3":
		return CodecH264
	case "hvc1", "hev1":
		return CodecHEVC
	case "av01":
		return CodecAV1
	case "vp09":
		return CodecVP9
	default:
		return CodecUnknown
	}
}
