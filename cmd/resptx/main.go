package main

func main() {
	SetupServeCmd()
	SetupValidateCmd()
	SetupApplyCmd()
	Execute()
}
