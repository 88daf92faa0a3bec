// Package domain contains the core production-planning types shared by the
// task handlers: scenes and scheduling constraints, shoot-day plans, casting
// recommendations with bias audits, script breakdowns, and marketing content.
//
// Types in this package are plain data with validation helpers. They perform
// no I/O and hold no references to stores, queues, or the generative backend,
// keeping the domain layer independent of infrastructure concerns.
package domain
