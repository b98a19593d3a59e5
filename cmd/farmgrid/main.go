package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulldump/goconfig"
	"go.uber.org/zap"

	"github.com/fulldump/farmgrid/bootstrap"
	"github.com/fulldump/farmgrid/configuration"
)

var banner = `
  __                                  _     _ 
 / _| __ _ _ __ _ __ ___   __ _ _ __(_) __| |
| |_ / _' | '__| '_ ' _ \ / _' | '__| |/ _' |
|  _| (_| | |  | | | | | | (_| | |  | | (_| |
|_|  \__,_|_|  |_| |_| |_|\__, |_|  |_|\__,_|
                          |___/  version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	logger, err := c.Logger()
	if err != nil {
		fmt.Println("ERROR:", err.Error())
		os.Exit(-1)
	}
	defer logger.Sync()

	start, _, err := bootstrap.Bootstrap(&c, logger)
	if err != nil {
		logger.Error("bootstrap", zap.Error(err))
		os.Exit(-1)
	}

	start()
}
