package graph

var SanitizeStateName = sanitizeStateName
