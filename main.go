package main

import "github.com/saotomryo/article-to-video-pipeline/cmd"

func main() {
	cmd.Execute()
}
