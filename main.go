/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package main

import "github.com/fadelsew02/maxime-app-sub000/cmd"

func main() {
	cmd.Execute()
}
