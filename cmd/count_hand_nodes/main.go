// Count the nodes reachable from the root of an exported hand.
package main

import (
	_ "expvar"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/timpalpant/hrcsim"
	"github.com/timpalpant/hrcsim/internal/config"
)

func main() {
	cfg, err := config.LoadTools()
	if err != nil {
		glog.Fatal(err)
	}

	exportDir := flag.String("dir", cfg.ExportDir, "Hand export directory (default $HRC_EXPORT_DIR)")
	numWorkers := flag.Int("workers", cfg.Workers, "Number of concurrent workers")
	debugAddr := flag.String("debug_addr", "localhost:4125", "Address serving pprof and expvar counters")
	flag.Parse()

	go http.ListenAndServe(*debugAddr, nil)
	if *numWorkers < 1 {
		*numWorkers = 1
	}

	hand, err := hrcsim.Open(*exportDir)
	if err != nil {
		glog.Fatal(err)
	}

	root, err := hand.Root()
	if err != nil {
		glog.Fatal(err)
	}

	counts := countReachable(hand, root, *numWorkers)
	glog.Infof("%d nodes in export, %d reachable from %v, %d terminal actions, %d unresolved",
		len(hand.Nodes()), counts.nodes, root, counts.terminal, counts.unresolved)
}

type reachCounts struct {
	nodes, terminal, unresolved int64
}

// countReachable visits every node reachable from root once, resolving
// successors concurrently through the hand's shared cache.
func countReachable(hand *hrcsim.Hand, root *hrcsim.Node, numWorkers int) reachCounts {
	var counts reachCounts
	var mu sync.Mutex
	seen := map[int]bool{root.ID(): true}

	var wg sync.WaitGroup
	workQueue := make(chan *hrcsim.Node, numWorkers)
	var visit func(node *hrcsim.Node)
	visit = func(node *hrcsim.Node) {
		defer wg.Done()
		atomic.AddInt64(&counts.nodes, 1)
		for i := 0; i < node.NumActions(); i++ {
			child, ok, err := hand.Step(node, i)
			if err != nil {
				glog.Errorf("%v action %d: %v", node, i, err)
				atomic.AddInt64(&counts.unresolved, 1)
				continue
			} else if !ok {
				atomic.AddInt64(&counts.terminal, 1)
				continue
			}

			mu.Lock()
			isNew := !seen[child.ID()]
			seen[child.ID()] = true
			mu.Unlock()
			if isNew {
				wg.Add(1)
				select {
				case workQueue <- child:
				default:
					// Queue full: visit inline rather than block.
					visit(child)
				}
			}
		}
	}

	for i := 0; i < numWorkers; i++ {
		go func() {
			for node := range workQueue {
				visit(node)
			}
		}()
	}

	wg.Add(1)
	workQueue <- root
	wg.Wait()
	close(workQueue)
	return counts
}
