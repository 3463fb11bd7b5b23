package main

import "github.com/luchuanbaker/MyPojoToJson/cmd/pojo2json/commands"

func main() {
	commands.Execute()
}
