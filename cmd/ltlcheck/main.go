// Command ltlcheck is a small interactive demo of the checker: it builds
// one of a few predefined Kripke structures, prompts for a formula of the
// form "p", "G p" or "F p", and prints Holds or a lasso counterexample. Structurally this is the teacher's main.go REPL loop
// (predefined-example menu, bufio.Reader prompt loop) generalized from CTL
// model queries to LTL checking.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rfielding/ltlcheck/ltl"
	"github.com/rfielding/ltlcheck/ltl/checker"
	"github.com/rfielding/ltlcheck/ltl/diagram"
	"github.com/rfielding/ltlcheck/ltl/kripke"
	"github.com/rfielding/ltlcheck/ltl/ltldsl"
)

func main() {
	fmt.Println("=== ltlcheck: LTL model checker (automata-theoretic method) ===")
	fmt.Println()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("Options:")
		fmt.Println("1. Traffic light model")
		fmt.Println("2. Mutual exclusion model")
		fmt.Println("3. Exit")
		fmt.Print("\nSelect option: ")

		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		var g *kripke.Graph
		switch input {
		case "1":
			g = trafficLightModel()
		case "2":
			g = mutualExclusionModel()
		case "3":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Invalid option")
			continue
		}

		fmt.Println()
		var diag strings.Builder
		_ = diagram.WriteMermaid(&diag, g)
		fmt.Println(diag.String())

		runChecks(g, reader, &logger)
	}
}

func runChecks(g *kripke.Graph, reader *bufio.Reader, logger *zerolog.Logger) {
	for {
		fmt.Println("\nEnter a formula (an atom like p, or G p / F p), or blank to go back:")
		fmt.Print("> ")
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		formula, err := parseAtomOrGloballyAtom(line)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}

		result, err := checker.Check[kripke.StateID](formula, g, logger)
		if err != nil {
			fmt.Println("checker error:", err)
			continue
		}

		fmt.Println("formula:", ltldsl.Pretty(formula))
		fmt.Println("verdict:", result.Verdict)
		if result.Counterexample != nil {
			var lasso strings.Builder
			_ = diagram.WriteLasso(&lasso, result.Counterexample.Prefix, result.Counterexample.Cycle, g.NameOf)
			fmt.Println(lasso.String())
		}
	}
}

// parseAtomOrGloballyAtom handles the most common demo queries ("p",
// "G p" and "F p") directly; richer parsing belongs to a dedicated surface
// syntax parser, which spec §1 explicitly leaves out of scope.
func parseAtomOrGloballyAtom(line string) (ltl.Formula, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		pid, err := ltl.NewPID(fields[0])
		if err != nil {
			return nil, err
		}
		return ltl.Atom(ltl.NewProposition(pid, fields[0], nil)), nil
	case 2:
		if fields[0] != "G" && fields[0] != "F" {
			return nil, fmt.Errorf("unsupported formula %q; try an atom like \"p\" or \"G p\"/\"F p\"", line)
		}
		pid, err := ltl.NewPID(fields[1])
		if err != nil {
			return nil, err
		}
		atom := ltl.Atom(ltl.NewProposition(pid, fields[1], nil))
		if fields[0] == "G" {
			return ltl.Globally(atom), nil
		}
		return ltl.Eventually(atom), nil
	default:
		return nil, fmt.Errorf("unsupported formula %q; try an atom like \"p\" or \"G p\"/\"F p\"", line)
	}
}

// trafficLightModel is a three-state cycle red -> green ->
// yellow -> red, with "safe" false only on yellow.
func trafficLightModel() *kripke.Graph {
	g := kripke.NewGraph()
	safe := mustPID("safe")
	g.AddState("red", safe)
	g.AddState("green", safe)
	g.AddState("yellow")
	g.AddEdge("red", "green")
	g.AddEdge("green", "yellow")
	g.AddEdge("yellow", "red")
	g.SetInitial("red")
	return g
}

// mutualExclusionModel has two states, one with both processes
// out of the critical section, one with process 1 inside it.
func mutualExclusionModel() *kripke.Graph {
	g := kripke.NewGraph()
	crit1 := mustPID("crit1")
	g.AddState("idle")
	g.AddState("p1_in_critical", crit1)
	g.AddEdge("idle", "p1_in_critical")
	g.AddEdge("p1_in_critical", "idle")
	g.SetInitial("idle")
	return g
}

func mustPID(s string) ltl.PID {
	p, err := ltl.NewPID(s)
	if err != nil {
		panic(err)
	}
	return p
}
