package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"powerflow/pkg/acpf"
	"powerflow/pkg/mpcase"
	"powerflow/pkg/solver"
	"powerflow/pkg/util"
)

func loadCase(path, caseID string) (map[string]any, error) {
	if caseID != "" {
		full, ok := mpcase.Bundled(caseID)
		if !ok {
			return nil, fmt.Errorf("unknown case id: %s", caseID)
		}
		return full, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing case file %s: %v", path, err)
	}
	return mpcase.ExpandCase(m)
}

func printResult(result *solver.Result) {
	fmt.Printf("\nPower Flow Results (%s):\n", result.Method)
	fmt.Println("========================")
	fmt.Printf("converged: %v\n", result.Converged)
	if result.Error != "" {
		fmt.Printf("error: %s\n", result.Error)
		return
	}

	fmt.Println("\nBus      Va (deg)    Vm (pu)")
	for _, rec := range result.Bus {
		line := fmt.Sprintf("%4v  %s", rec["id"], util.FormatDeg(rec["Va_deg"].(float64)))
		if vm, ok := rec["Vm_pu"].(float64); ok {
			line += "  " + util.FormatPU(vm)
		}
		fmt.Println(line)
	}

	fmt.Println("\nBranch   Flow")
	for _, rec := range result.Branch {
		if p, ok := rec["Pft_pu"].(float64); ok {
			fmt.Printf("%4v   %s pu\n", rec["idx"], util.FormatPU(p))
			continue
		}
		if p, ok := rec["Pf_MW"].(float64); ok {
			fmt.Printf("%4v   %s MW\n", rec["idx"], util.FormatMW(p))
		}
	}
}

func main() {
	caseFile := flag.String("i", "", "case file (JSON, MATPOWER-style)")
	caseID := flag.String("case", "", "bundled case id (case9, case14)")
	method := flag.String("method", "dc", "solving method: dc or ac")
	asJSON := flag.Bool("json", false, "print the sanitized JSON payload")
	flag.Parse()

	if *caseFile == "" && *caseID == "" {
		fmt.Fprintln(os.Stderr, "usage: pf -i case.json [-method dc|ac] [-json]")
		fmt.Fprintln(os.Stderr, "       pf -case case9 [-method dc|ac] [-json]")
		os.Exit(2)
	}

	cas, err := loadCase(*caseFile, *caseID)
	if err != nil {
		log.Fatalf("loading case: %v", err)
	}

	engine := solver.NewEngine(acpf.New())
	result, err := engine.RunPF(cas, *method, nil)
	if err != nil {
		log.Fatalf("solve failed: %v", err)
	}

	if *asJSON {
		data, err := json.MarshalIndent(result.Map(), "", "  ")
		if err != nil {
			log.Fatalf("encoding result: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	printResult(result)
}
