// Package gradle rebuilds the dependency trees printed by `gradle dependencies`.
//
// # Overview
//
// The report is plain text. Each configuration prints a label line followed by
// its dependencies, drawn with ASCII connectors:
//
//	runtimeClasspath - Runtime classpath of source set 'main'.
//	+--- org.slf4j:slf4j-api:1.7.36
//	\--- com.google.guava:guava:31.1-jre
//	     +--- com.google.guava:failureaccess:1.0.1
//	     \--- org.checkerframework:checker-qual:3.12.0 -> 3.33.0
//
// There is no nesting syntax. Structure is recovered from the depth of each
// line relative to the line before it.
//
// # Pipeline
//
// Parsing runs in two stages:
//
//  1. [ReadBlocks] slices the line stream into one [Block] per configuration,
//     dropping blank separators and any surrounding report noise.
//  2. [BuildTree] normalizes each line ([Normalize]), parses it into a [Node]
//     ([ParseLine]) and places it with a stack of ancestors.
//
// [Parse] and [Load] run both stages. The result is a synthetic root labelled
// [RootLabel] with one child per configuration, in report order.
//
// # Levels
//
// The root sits at [RootLevel] and configurations at [ConfigurationLevel].
// A configuration's direct dependencies are at level 0, their children at 1,
// and so on. A line without any tree marker cannot be placed; it is kept in
// the owning configuration's [Node.Unplaced] list instead of the tree.
//
// # Malformed input
//
// Lines whose payload is not group:artifact:version (for example
// "project :core") become opaque nodes: [Node.Opaque] is set, the label holds
// the raw line and no coordinates are filled in. They are still placed by
// their marker depth, so their children stay attached. Only reader failures
// are reported as errors.
package gradle
