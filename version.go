package main

// Version is the application version shown in the title bar.
const Version = "1.0.0"
