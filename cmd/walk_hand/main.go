// Follow a line of play through an exported hand and print where it ends.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pterm/pterm"

	"github.com/timpalpant/hrcsim"
	"github.com/timpalpant/hrcsim/internal/config"
)

func main() {
	cfg, err := config.LoadTools()
	if err != nil {
		glog.Fatal(err)
	}

	exportDir := flag.String("dir", cfg.ExportDir, "Hand export directory (default $HRC_EXPORT_DIR)")
	line := flag.String("line", "", "Comma-separated action indices to take from the root, e.g. 1,0")
	showHands := flag.Bool("hands", cfg.ShowHands, "Print the strategy of every hand at the final node")
	flag.Parse()

	if *exportDir == "" {
		glog.Fatal("no export directory given: use -dir or HRC_EXPORT_DIR")
	}

	indices, err := parseLine(*line)
	if err != nil {
		glog.Fatal(err)
	}

	hand, err := hrcsim.Open(*exportDir)
	if err != nil {
		glog.Fatal(err)
	}
	glog.Infof("Opened %s: %d nodes, %d warnings", hand.Dir(), len(hand.Nodes()), len(hand.Warnings()))
	if s := hand.Settings(); s != nil {
		glog.Infof("Stacks: %v, blinds: %v, engine: %s", s.Stacks(), s.Blinds(), s.EngineType())
	}

	node, err := hand.Root()
	if err != nil {
		glog.Fatal(err)
	}

	for _, i := range indices {
		action, err := node.Action(i)
		if err != nil {
			glog.Fatal(err)
		}

		next, ok, err := hand.Step(node, i)
		if err != nil {
			glog.Fatal(err)
		}
		if !ok {
			fmt.Printf("%v: player %d %v ends the hand\n", node, action.Player, action)
			return
		}

		fmt.Printf("%v: player %d %v -> %v\n", node, action.Player, action, next)
		node = next
	}

	printNode(node)
	if *showHands {
		if err := renderHands(node); err != nil {
			glog.Fatal(err)
		}
	}
}

func parseLine(line string) ([]int, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}

	var result []int
	for _, field := range strings.Split(line, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid action index %q in line %q", field, line)
		}
		result = append(result, i)
	}

	return result, nil
}

func printNode(node *hrcsim.Node) {
	fmt.Printf("%v: player %d to act on street %d\n", node, node.Player(), node.Street())
	fmt.Printf("History: %v\n", node.History())
	for i, action := range node.Actions() {
		next := "terminal"
		if id, ok := action.Successor(); ok {
			next = fmt.Sprintf("node %d", id)
		}
		fmt.Printf("  [%d] %v -> %s\n", i, action, next)
	}
}

func renderHands(node *hrcsim.Node) error {
	header := []string{"Hand", "Weight"}
	for _, action := range node.Actions() {
		header = append(header, action.String(), "EV "+action.String())
	}

	data := pterm.TableData{header}
	for _, key := range node.HandKeys() {
		hs, _ := node.Hand(key)
		row := []string{key, strconv.FormatFloat(hs.Weight(), 'f', 4, 64)}
		evs := hs.EVs()
		for j, freq := range hs.Played() {
			row = append(row,
				strconv.FormatFloat(freq, 'f', 3, 64),
				strconv.FormatFloat(evs[j], 'f', 2, 64))
		}
		data = append(data, row)
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
