package main

import "github.com/shouni/hospital-exact/cmd"

// main は cmd.Execute に処理を委ねます。エラー時の終了処理は clibase が担います。
func main() {
	cmd.Execute()
}
