package replica

// Version is the release of the replica driver.
var Version = "0.3.0"
