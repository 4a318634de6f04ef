// Command teamreel assigns promotional team videos to the placeholder rows
// of an event run-of-show workbook.
//
// The optimize command reads the match schedule (JSON) and the workbook,
// chooses one video per placeholder so that every slot shows a delegation
// playing in the upcoming match at minimum total value, writes the result
// back and records the run. Supporting commands resolve delegation labels,
// browse the video catalog, look up interview booth scripts, and inspect
// run history and configuration.
package main
