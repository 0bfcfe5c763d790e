package conf

import "github.com/iWorld-y/aura/app/aura/pkg/config"

type Bootstrap struct {
	Server *Server         `json:"server"`
	Aura   *config.Config `json:"aura"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}
