package main

import (
	"flag"
	"log"
	"net/http"

	"arena/internal/server"
)

func main() {
	addr := flag.String("addr", ":1111", "listen address")
	flag.Parse()

	hub := server.NewHub()
	go hub.Run()

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		server.ServeWS(hub, w, r)
	})

	log.Printf("listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
