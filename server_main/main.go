// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"github.com/SoftbearStudios/glide/server"
	"github.com/SoftbearStudios/glide/server/character"
	"github.com/SoftbearStudios/glide/server/cloud/fs"
	"github.com/SoftbearStudios/glide/server/geometry"
	"github.com/SoftbearStudios/glide/server/solid/noise"
	"github.com/SoftbearStudios/glide/server/world"
	"github.com/SoftbearStudios/glide/server/world/sector"
	"github.com/SoftbearStudios/glide/server/world/single"
	"golang.org/x/net/netutil"
	"log"
	"net"
	"net/http"
	_ "net/http/pprof"
)

const (
	// terrainRadius is how far noise terrain extends either side of the origin
	terrainRadius = 4096
	spawnSpacing  = 512
	spawnHeight   = 128 // above the terrain surface
)

func main() {
	var (
		port           int
		maxConnections int
		levelName      string
		static         string
		bucket         string
		region         string
		tuningName     string
		seed           int64
		characters     int
		useSector      bool
		logFile        string
		publish        string
	)

	flag.IntVar(&port, "port", 8192, "http service port")
	flag.IntVar(&maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	flag.StringVar(&levelName, "level", "", "Tiled (.tmx) or geometry (.json) level, noise terrain if empty")
	flag.StringVar(&static, "static", ".", "directory to load levels and tuning from")
	flag.StringVar(&bucket, "bucket", "", "S3 bucket to load levels and tuning from instead of -static")
	flag.StringVar(&region, "region", "us-east-1", "S3 region")
	flag.StringVar(&tuningName, "tuning", "", "character tuning (.toml), defaults if empty")
	flag.Int64Var(&seed, "seed", noise.Seed, "noise terrain seed")
	flag.IntVar(&characters, "characters", 4, "minimum number of bot characters")
	flag.BoolVar(&useSector, "sector", false, "divide the level into sectors")
	flag.StringVar(&logFile, "log", "", "csv file to append stats to")
	flag.StringVar(&publish, "publish", "", "upload the level as geometry JSON with this name")
	flag.Parse()

	if characters < 0 {
		log.Fatal("invalid argument characters: ", characters)
	}

	var filesystem fs.Filesystem
	if bucket != "" {
		s3, err := fs.NewS3Filesystem(region, bucket)
		if err != nil {
			log.Fatalf("S3: %v", err)
		}
		filesystem = s3
	} else {
		filesystem = fs.NewLocalFilesystem(static)
	}

	var level world.Level
	if useSector {
		level = sector.New(terrainRadius)
	} else {
		level = single.New()
	}

	spawns, err := populate(level, filesystem, levelName, seed, publish)
	if err != nil {
		log.Fatal(err)
	}

	tuning := character.DefaultTuning()
	if tuningName != "" {
		file, err := filesystem.Open(tuningName)
		if err != nil {
			log.Fatalf("tuning: %v", err)
		}
		tuning, err = character.DecodeTuning(file)
		_ = file.Close()
		if err != nil {
			log.Fatal(err)
		}
	}

	hub := server.NewHub(server.HubOptions{
		Level:   level,
		Tuning:  &tuning,
		Spawns:  spawns,
		MinBots: characters,
		LogFile: logFile,
	})

	go hub.Run()

	if port < 0 {
		log.Println("glide simulation started")
		// Block forever
		<-make(chan struct{})
	}

	log.Printf("glide server started on port %d with %d objects\n", port, level.Count())

	http.HandleFunc("/", hub.ServeIndex)
	http.HandleFunc("/ws", hub.ServeSocket)

	l, err := net.Listen("tcp", fmt.Sprint(":", port))

	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, maxConnections)

	log.Fatal("ListenAndServe: ", http.Serve(l, nil))
}

// populate fills level from a map or noise terrain and returns the spawns.
func populate(level world.Level, filesystem fs.Filesystem, levelName string, seed int64, publish string) ([]world.Vec2f, error) {
	if levelName == "" {
		generator := noise.New(seed)
		level.Add(generator.Sprite(-terrainRadius, terrainRadius, 0))

		var spawns []world.Vec2f
		for x := float32(-terrainRadius / 2); x <= terrainRadius/2; x += spawnSpacing {
			spawns = append(spawns, world.Vec2f{X: x, Y: generator.Height(x) + spawnHeight})
		}
		return spawns, nil
	}

	m, err := geometry.LoadMap(filesystem, levelName)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %d sprites and %d spawns from %s\n", m.Populate(level), len(m.Spawns), levelName)

	if publish != "" {
		data, err := geometry.MarshalMap(m)
		if err != nil {
			return nil, err
		}
		if err := filesystem.UploadStaticFile(publish, 60, data); err != nil {
			return nil, fmt.Errorf("publish %s: %w", publish, err)
		}
	}
	return m.Spawns, nil
}
