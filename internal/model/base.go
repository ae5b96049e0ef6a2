package model

// DateOnly is the wire and storage format for calendar dates.
const DateOnly = "2006-01-02"
