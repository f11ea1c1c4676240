package storage

// Persisted state layout. A value written under one of these keys is trusted
// verbatim on read; there is no schema versioning.
const (
	KeyRegisteredUsers    = "registeredUsers"
	KeyComplaints         = "complaints"
	KeySOSAlerts          = "sosAlerts"
	KeyCurrentUserEmail   = "currentUserEmail"
	KeyCampusSafetyStatus = "campusSafetyStatus"
)
