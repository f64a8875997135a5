// Package planner decides where a recipe may run.
//
// It contains the two pure decision layers of the engine: dependency
// validation (are a recipe's declared requirements satisfied against a given
// workspace or project scope) and scope resolution (at which granularity the
// recipe executes, producing an ordered target plan).
//
// The planner never mutates state and never talks to the filesystem; it
// operates on an analysis snapshot and a loaded workspace state document.
package planner
