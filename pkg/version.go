package selah

// Version of the selah application and library.
const Version = "0.3.0"
