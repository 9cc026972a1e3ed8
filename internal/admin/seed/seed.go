// Package seed holds the bootstrap catalog loaded by the initialize
// operations. Field names in the YAML file are the canonical property names
// used on the write and read paths; aliases are not accepted.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type CourseSeed struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Published   bool   `yaml:"published"`
}

type ConceptSeed struct {
	ConceptID         string   `yaml:"concept_id"`
	Name              string   `yaml:"name"`
	DifficultyLevel   string   `yaml:"difficulty_level"`
	EstimatedDuration int      `yaml:"estimated_duration"`
	Prerequisites     []string `yaml:"prerequisites,omitempty"`
	Recommends        []string `yaml:"recommends,omitempty"`
}

type Catalog struct {
	Courses  []CourseSeed  `yaml:"courses"`
	Concepts []ConceptSeed `yaml:"concepts"`
}

func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &cat, nil
}

// Default is the built-in catalog used when no seed file is configured.
func Default() *Catalog {
	return &Catalog{
		Courses: []CourseSeed{
			{Title: "Introduction to Programming", Description: "Variables, control flow and functions.", Published: true},
			{Title: "Data Structures", Description: "Lists, maps, trees and when to use them.", Published: false},
		},
		Concepts: []ConceptSeed{
			{ConceptID: "variables", Name: "Variables", DifficultyLevel: "beginner", EstimatedDuration: 30},
			{ConceptID: "loops", Name: "Loops", DifficultyLevel: "beginner", EstimatedDuration: 45, Prerequisites: []string{"variables"}},
			{ConceptID: "functions", Name: "Functions", DifficultyLevel: "intermediate", EstimatedDuration: 60, Prerequisites: []string{"variables"}, Recommends: []string{"recursion"}},
			{ConceptID: "recursion", Name: "Recursion", DifficultyLevel: "advanced", EstimatedDuration: 90, Prerequisites: []string{"functions"}},
		},
	}
}
