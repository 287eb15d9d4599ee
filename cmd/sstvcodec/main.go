/*
NAME
  sstvcodec

DESCRIPTION
  sstvcodec is a command-line front end for the SSTV signal-processing
  core: it encodes a raw RGBA raster to a WAV-framed SSTV tone train, or
  decodes an SSTV WAV recording back to a raw RGBA raster. Image I/O
  proper is out of the core's scope (§1), so the raster file it reads and
  writes here is a fixed-size raw byte dump, not a decoded PNG/JPEG — the
  minimal stand-in for the external image stage.

LICENSE
  See repository root.
*/

// Command sstvcodec drives the SSTV encoder and decoder from the command
// line, grounded on cmd/speaker and cmd/looper's flag-parsing and
// structured-logging conventions.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kb9vjv/sstv/config"
	"github.com/kb9vjv/sstv/decoder"
	"github.com/kb9vjv/sstv/encoder"
	"github.com/kb9vjv/sstv/mode"
	"github.com/kb9vjv/sstv/pcm"
	"github.com/kb9vjv/sstv/raster"
	"github.com/kb9vjv/sstv/wav"
	"github.com/ausocean/utils/logging"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logging configuration (cmd/speaker, cmd/looper convention).
const (
	logPath      = "sstvcodec.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

func main() {
	var (
		encodeMode = flag.String("encode", "", "encode mode: one of ROBOT36, MARTIN1, SCOTTIE1")
		decodeMode = flag.Bool("decode", false, "decode the input WAV file")
		forceMode  = flag.String("force-mode", "", "skip VIS detection and force this mode on decode")
		inPath     = flag.String("in", "", "input file path (raw RGBA for -encode, WAV for -decode)")
		outPath    = flag.String("out", "", "output file path (WAV for -encode, raw RGBA for -decode)")
		useFM      = flag.Bool("fm-demod", false, "use the FM phase-difference front end instead of Goertzel")
		listModes  = flag.Bool("list-modes", false, "print the supported modes and exit")
		logFile    = flag.String("logfile", logPath, "path to the log file")
	)
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   *logFile,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	if *listModes {
		for _, d := range mode.All() {
			fmt.Println(d.String())
		}
		return
	}

	switch {
	case *encodeMode != "":
		runEncode(log, *encodeMode, *inPath, *outPath)
	case *decodeMode:
		runDecode(log, *forceMode, *useFM, *inPath, *outPath)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func parseMode(name string) (config.Mode, bool) {
	switch name {
	case "ROBOT36":
		return config.Robot36, true
	case "MARTIN1":
		return config.MartinM1, true
	case "SCOTTIE1":
		return config.ScottieS1, true
	default:
		return 0, false
	}
}

func runEncode(log logging.Logger, modeName, inPath, outPath string) {
	m, ok := parseMode(modeName)
	if !ok {
		log.Fatal("unknown mode", "mode", modeName)
	}
	d, ok := mode.ByMode(m)
	if !ok {
		log.Fatal("mode not registered", "mode", modeName)
	}

	log.Debug("reading raster", "path", inPath, "width", d.Width, "height", d.Lines)
	raw, err := os.ReadFile(inPath)
	if err != nil {
		log.Fatal("could not read input raster", "error", err)
	}
	want := d.Width * d.Lines * 4
	if len(raw) != want {
		log.Fatal("raster size mismatch", "got", len(raw), "want", want)
	}
	r := &raster.Raster{Width: d.Width, Height: d.Lines, Pix: raw}

	log.Debug("encoding", "mode", modeName)
	enc, err := encoder.New(config.Config{Mode: m})
	if err != nil {
		log.Fatal("could not construct encoder", "error", err)
	}
	samples, err := enc.Encode(r)
	if err != nil {
		log.Fatal("encode failed", "error", err)
	}

	buf := pcm.Buffer{Rate: config.DefaultSampleRate, Samples: samples}
	out, err := wav.Write(wav.Metadata{Channels: 1, SampleRate: buf.Rate, BitDepth: 16}, buf.Bytes())
	if err != nil {
		log.Fatal("wav encode failed", "error", err)
	}

	if err := os.WriteFile(outPath, out, 0644); err != nil {
		log.Fatal("could not write output WAV", "error", err)
	}
	log.Info("encode complete", "samples", len(samples), "out", outPath)
}

func runDecode(log logging.Logger, forceModeName string, useFM bool, inPath, outPath string) {
	raw, err := os.ReadFile(inPath)
	if err != nil {
		log.Fatal("could not read input WAV", "error", err)
	}
	md, data, err := wav.Read(raw)
	if err != nil {
		log.Fatal("wav decode failed", "error", err)
	}
	buf, err := pcm.FromBytes(data, md.SampleRate)
	if err != nil {
		log.Fatal("pcm decode failed", "error", err)
	}

	cfg := config.Config{SampleRate: md.SampleRate, UseFMDemod: useFM}
	if forceModeName != "" {
		m, ok := parseMode(forceModeName)
		if !ok {
			log.Fatal("unknown forced mode", "mode", forceModeName)
		}
		cfg.Mode = m
		cfg.Forced = true
	}

	dec, err := decoder.New(cfg)
	if err != nil {
		log.Fatal("could not construct decoder", "error", err)
	}

	log.Debug("decoding", "samples", len(buf.Samples), "rate", buf.Rate)
	r, err := dec.Decode(buf.Samples, buf.Rate)
	if err != nil {
		log.Fatal("decode failed", "error", err)
	}
	for _, w := range dec.Warnings() {
		log.Warning("decode warning", "warning", w)
	}

	if err := os.WriteFile(outPath, r.Pix, 0644); err != nil {
		log.Fatal("could not write output raster", "error", err)
	}
	log.Info("decode complete", "width", r.Width, "height", r.Height, "out", outPath)
}
